package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/middleware"
	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type classService interface {
	List(ctx context.Context) ([]models.Class, bool, error)
	Create(ctx context.Context, req service.ClassRequest) (*models.Class, error)
	Update(ctx context.Context, id int64, req service.ClassRequest) (*models.Class, error)
	Delete(ctx context.Context, id int64) error
}

// ClassHandler exposes class CRUD endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, hit, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, classes, nil, middleware.Meta(c))
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.ClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body service.ClassRequest true "Class payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/classes/{id} [put]
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	class, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, class)
}

// Delete godoc
// @Summary Delete class
// @Description Deleting a class cascades to its students, journals and their records
// @Tags Classes
// @Param id path int true "Class ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
