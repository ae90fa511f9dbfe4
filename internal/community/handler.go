package community

import (
	"context"
	"net/http"

	"pantrypal/internal/middleware"
	"pantrypal/internal/waste"

	"github.com/gin-gonic/gin"
)

// WasteProjector supplies the user's current weekly waste projection;
// the waste estimator satisfies it.
type WasteProjector interface {
	GetWeeklyProjection(ctx context.Context, userID string) (*waste.Projection, error)
}

type Handler struct {
	comparator *Comparator
	projector  WasteProjector
}

func NewHandler(comparator *Comparator, projector WasteProjector) *Handler {
	return &Handler{comparator: comparator, projector: projector}
}

// Comparison benchmarks the caller's weekly waste projection against
// the community aggregates.
func (h *Handler) Comparison(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	comparison, err := h.compare(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build comparison"})
		return
	}

	c.JSON(http.StatusOK, comparison)
}

// Insights returns up to 3 waste-reduction insights for the caller.
func (h *Handler) Insights(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	comparison, err := h.compare(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build comparison"})
		return
	}

	insights := h.comparator.GenerateInsights(c.Request.Context(), userID, comparison)
	if insights == nil {
		insights = []*Insight{}
	}

	c.JSON(http.StatusOK, insights)
}

func (h *Handler) compare(ctx context.Context, userID string) (*Comparison, error) {
	proj, err := h.projector.GetWeeklyProjection(ctx, userID)
	if err != nil {
		return nil, err
	}
	return h.comparator.CompareToCommunity(ctx, userID, proj.Grams, proj.Cost)
}

// Averages exposes the raw aggregate table.
func (h *Handler) Averages(c *gin.Context) {
	stats, err := h.comparator.GetCommunityAverages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load community averages"})
		return
	}
	if stats == nil {
		stats = []*Stats{}
	}

	c.JSON(http.StatusOK, stats)
}

// Recompute rebuilds the aggregate table. Admin only; wired behind
// RequireRole in main.
func (h *Handler) Recompute(c *gin.Context) {
	if err := h.comparator.RecomputeStats(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recompute failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recomputed"})
}
