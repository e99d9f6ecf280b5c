package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type dailyStateService interface {
	List(ctx context.Context, query service.DailyStateQuery) ([]models.StudentDailyState, error)
	SetGrade(ctx context.Context, studentID int64, req service.GradeRequest) error
	SetStatus(ctx context.Context, studentID int64, req service.StatusRequest) error
	InitialData(ctx context.Context) (*service.InitialData, error)
}

// DailyStateHandler serves the per-day roster with grades and attendance.
type DailyStateHandler struct {
	service dailyStateService
}

// NewDailyStateHandler constructs a daily state handler.
func NewDailyStateHandler(svc dailyStateService) *DailyStateHandler {
	return &DailyStateHandler{service: svc}
}

// InitialData godoc
// @Summary Dashboard bootstrap
// @Description Classes plus today's roster of the first class
// @Tags Daily
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/initial-data [get]
func (h *DailyStateHandler) InitialData(c *gin.Context) {
	data, err := h.service.InitialData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, data)
}

// List godoc
// @Summary Daily roster
// @Description Students of a class with the grade and status recorded on a date. Missing records read as the default grade and Hadir.
// @Tags Daily
// @Produce json
// @Param classId query int true "Class ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/students [get]
func (h *DailyStateHandler) List(c *gin.Context) {
	var query service.DailyStateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	states, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, states)
}

// SetGrade godoc
// @Summary Record a grade
// @Tags Daily
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.GradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/student/{id}/grade [put]
func (h *DailyStateHandler) SetGrade(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	if err := h.service.SetGrade(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Nilai berhasil disimpan")
}

// SetStatus godoc
// @Summary Record attendance
// @Tags Daily
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.StatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/student/{id}/status [put]
func (h *DailyStateHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	if err := h.service.SetStatus(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Status berhasil disimpan")
}
