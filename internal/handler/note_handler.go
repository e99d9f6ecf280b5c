package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type noteService interface {
	List(ctx context.Context, studentID int64) ([]models.NoteView, error)
	Create(ctx context.Context, studentID int64, req service.NoteRequest) (*service.NoteResult, error)
	Delete(ctx context.Context, noteID int64) (*service.NoteResult, error)
}

// NoteHandler serves free-text student notes.
type NoteHandler struct {
	service noteService
}

// NewNoteHandler constructs a note handler.
func NewNoteHandler(svc noteService) *NoteHandler {
	return &NoteHandler{service: svc}
}

// List godoc
// @Summary Notes of a student
// @Description Newest first
// @Tags Notes
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /api/student/{id}/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.service.List(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, notes)
}

// Create godoc
// @Summary Add a note
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.NoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/student/{id}/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	result, err := h.service.Create(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Delete a note
// @Description Reports whether the owning student still has notes
// @Tags Notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
