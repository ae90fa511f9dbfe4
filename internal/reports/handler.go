package reports

import (
	"net/http"

	"pantrypal/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateWasteReport exports the caller's waste ledger and returns the
// download URL.
func (h *Handler) CreateWasteReport(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.service.GenerateWasteReport(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate report"})
		return
	}

	c.JSON(http.StatusCreated, report)
}
