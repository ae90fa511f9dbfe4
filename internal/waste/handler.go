package waste

import (
	"net/http"
	"time"

	"pantrypal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Handler struct {
	estimator *Estimator
}

func NewHandler(estimator *Estimator) *Handler {
	return &Handler{estimator: estimator}
}

func (h *Handler) Estimate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	est, err := h.estimator.EstimateCurrentWaste(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not estimate waste"})
		return
	}

	c.JSON(http.StatusOK, est)
}

func (h *Handler) WeeklyProjection(c *gin.Context) {
	h.projection(c, "weekly")
}

func (h *Handler) MonthlyProjection(c *gin.Context) {
	h.projection(c, "monthly")
}

func (h *Handler) projection(c *gin.Context, period string) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var (
		proj *Projection
		err  error
	)
	if period == "monthly" {
		proj, err = h.estimator.GetMonthlyProjection(c.Request.Context(), userID)
	} else {
		proj, err = h.estimator.GetWeeklyProjection(c.Request.Context(), userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build projection"})
		return
	}

	c.JSON(http.StatusOK, proj)
}

type recordRequest struct {
	ItemName string  `json:"item_name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Grams    float64 `json:"grams" validate:"required,gt=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Reason   string  `json:"reason"`
	WastedAt string  `json:"wasted_at"`
}

func (req *recordRequest) toRecord() (*Record, error) {
	rec := &Record{
		ItemName: req.ItemName,
		Category: req.Category,
		Grams:    req.Grams,
		Cost:     req.Cost,
		Reason:   req.Reason,
	}
	if req.WastedAt != "" {
		t, err := time.Parse("2006-01-02", req.WastedAt)
		if err != nil {
			return nil, err
		}
		rec.WastedAt = t
	}
	return rec, nil
}

func (h *Handler) CreateRecord(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := req.toRecord()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wasted_at, use YYYY-MM-DD"})
		return
	}
	rec.UserID = userID

	if err := h.estimator.RecordWaste(c.Request.Context(), rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) BulkCreateRecords(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var reqs []recordRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := BulkResult{}
	records := make([]*Record, 0, len(reqs))
	for i := range reqs {
		rec, err := reqs[i].toRecord()
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, "invalid wasted_at, use YYYY-MM-DD")
			continue
		}
		records = append(records, rec)
	}

	inserted := h.estimator.BulkRecord(c.Request.Context(), userID, records)
	result.Inserted = inserted.Inserted
	result.Failed += inserted.Failed
	result.Errors = append(result.Errors, inserted.Errors...)

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Patterns(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	patterns, err := h.estimator.AnalyzeWastePatterns(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze patterns"})
		return
	}
	if patterns == nil {
		patterns = []*Pattern{}
	}

	c.JSON(http.StatusOK, patterns)
}

func (h *Handler) History(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, h.estimator.GetHistoricalWasteStats(c.Request.Context(), userID))
}
