package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type behaviorService interface {
	List(ctx context.Context, query service.BehaviorListQuery) ([]models.BehaviorNoteDetail, *models.Pagination, error)
	Stats(ctx context.Context, classID int64) ([]models.BehaviorCategoryStat, error)
	Get(ctx context.Context, id int64) (*models.BehaviorNoteDetail, error)
	Create(ctx context.Context, req service.BehaviorNoteRequest) (*models.BehaviorNote, error)
	Update(ctx context.Context, id int64, req service.BehaviorNoteRequest) (*models.BehaviorNote, error)
	Delete(ctx context.Context, id int64) error
}

// BehaviorHandler serves categorized behavior notes.
type BehaviorHandler struct {
	service behaviorService
}

// NewBehaviorHandler constructs a behavior note handler.
func NewBehaviorHandler(svc behaviorService) *BehaviorHandler {
	return &BehaviorHandler{service: svc}
}

// List godoc
// @Summary List behavior notes
// @Tags Behavior
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size (max 100)"
// @Param classId query int false "Class ID"
// @Param studentId query int false "Student ID"
// @Param category query string false "Category"
// @Success 200 {object} response.Envelope
// @Router /api/behavior-notes [get]
func (h *BehaviorHandler) List(c *gin.Context) {
	var query service.BehaviorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	notes, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, pagination)
}

// Stats godoc
// @Summary Behavior note counts per category
// @Tags Behavior
// @Produce json
// @Param classId query int false "Class ID"
// @Success 200 {object} response.Envelope
// @Router /api/behavior-notes/stats [get]
func (h *BehaviorHandler) Stats(c *gin.Context) {
	var classID int64
	if raw := c.Query("classId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, invalidQuery(err))
			return
		}
		classID = parsed
	}
	stats, err := h.service.Stats(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Get godoc
// @Summary Behavior note detail
// @Tags Behavior
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/behavior-notes/{id} [get]
func (h *BehaviorHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	note, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, note)
}

// Create godoc
// @Summary Create behavior note
// @Description The class is taken from the student's current class
// @Tags Behavior
// @Accept json
// @Produce json
// @Param payload body service.BehaviorNoteRequest true "Behavior note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/behavior-notes [post]
func (h *BehaviorHandler) Create(c *gin.Context) {
	var req service.BehaviorNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	note, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Update godoc
// @Summary Update behavior note
// @Tags Behavior
// @Accept json
// @Produce json
// @Param id path int true "Note ID"
// @Param payload body service.BehaviorNoteRequest true "Behavior note payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/behavior-notes/{id} [put]
func (h *BehaviorHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.BehaviorNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	note, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, note)
}

// Delete godoc
// @Summary Delete behavior note
// @Tags Behavior
// @Param id path int true "Note ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/behavior-notes/{id} [delete]
func (h *BehaviorHandler) Delete(c *gin.Context) {
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
