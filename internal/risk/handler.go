package risk

import (
	"net/http"

	"pantrypal/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	predictor *Predictor
}

func NewHandler(predictor *Predictor) *Handler {
	return &Handler{predictor: predictor}
}

// Calculate recomputes and persists risk scores for the caller's
// whole inventory.
func (h *Handler) Calculate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	scores, err := h.predictor.CalculateAllRisks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate risks"})
		return
	}

	if err := h.predictor.SaveRiskScores(c.Request.Context(), userID, scores); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save risk scores"})
		return
	}

	c.JSON(http.StatusOK, scores)
}

// Scores returns the persisted risk scores for the caller.
func (h *Handler) Scores(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	scores, err := h.predictor.ScoresByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load risk scores"})
		return
	}
	if scores == nil {
		scores = []*Score{}
	}

	c.JSON(http.StatusOK, scores)
}
