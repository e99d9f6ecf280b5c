package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/middleware"
	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type historyService interface {
	Summary(ctx context.Context) ([]models.ClassHistory, bool, error)
}

// HistoryHandler serves the per-class coverage index.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler constructs a history handler.
func NewHistoryHandler(svc historyService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// Summary godoc
// @Summary Months with journals or grade records per class
// @Tags History
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/history-summary [get]
func (h *HistoryHandler) Summary(c *gin.Context) {
	history, hit, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, history, nil, middleware.Meta(c))
}
