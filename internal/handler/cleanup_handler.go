package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type cleanupService interface {
	Cleanup(ctx context.Context, req service.CleanupRequest) (*models.CleanupResult, error)
}

// CleanupHandler purges a class's daily records.
type CleanupHandler struct {
	service cleanupService
}

// NewCleanupHandler constructs a cleanup handler.
func NewCleanupHandler(svc cleanupService) *CleanupHandler {
	return &CleanupHandler{service: svc}
}

// Cleanup godoc
// @Summary Delete a class's grades, attendance and journals for one date
// @Description All three deletions commit together or not at all
// @Tags Daily
// @Accept json
// @Produce json
// @Param payload body service.CleanupRequest true "Cleanup payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/cleanup-daily-data [delete]
func (h *CleanupHandler) Cleanup(c *gin.Context) {
	var req service.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.Cleanup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
