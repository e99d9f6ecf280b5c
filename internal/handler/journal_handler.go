package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type journalService interface {
	ListByDate(ctx context.Context, query service.JournalDateQuery) ([]models.ClassJournal, error)
	ListByMonth(ctx context.Context, query service.JournalMonthQuery) ([]models.ClassJournal, error)
	MonthlyFile(ctx context.Context, query service.JournalMonthQuery) (*service.ReportFile, error)
	Create(ctx context.Context, req service.CreateJournalRequest) (*models.ClassJournal, error)
	Update(ctx context.Context, id int64, req service.UpdateJournalRequest) (*models.ClassJournal, error)
	Delete(ctx context.Context, id int64) error
}

// JournalHandler serves class teaching journals.
type JournalHandler struct {
	service journalService
}

// NewJournalHandler constructs a journal handler.
func NewJournalHandler(svc journalService) *JournalHandler {
	return &JournalHandler{service: svc}
}

// List godoc
// @Summary Journals of a class on a date
// @Tags Journals
// @Produce json
// @Param classId query int true "Class ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/journals [get]
func (h *JournalHandler) List(c *gin.Context) {
	var query service.JournalDateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	journals, err := h.service.ListByDate(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, journals)
}

// Monthly godoc
// @Summary Journals of a class in a month
// @Description Returns JSON, or a file download when format is given
// @Tags Journals
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classId query int true "Class ID"
// @Param month query string true "Month (YYYY-MM)"
// @Param format query string false "xlsx, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/report/journals-monthly [get]
func (h *JournalHandler) Monthly(c *gin.Context) {
	var query service.JournalMonthQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	if query.Format == "" {
		journals, err := h.service.ListByMonth(c.Request.Context(), query)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, journals)
		return
	}
	file, err := h.service.MonthlyFile(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Create godoc
// @Summary Create journal
// @Tags Journals
// @Accept json
// @Produce json
// @Param payload body service.CreateJournalRequest true "Journal payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /api/journals [post]
func (h *JournalHandler) Create(c *gin.Context) {
	var req service.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	journal, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, journal)
}

// Update godoc
// @Summary Update journal
// @Tags Journals
// @Accept json
// @Produce json
// @Param id path int true "Journal ID"
// @Param payload body service.UpdateJournalRequest true "Journal payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/journals/{id} [put]
func (h *JournalHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	journal, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, journal)
}

// Delete godoc
// @Summary Delete journal
// @Tags Journals
// @Param id path int true "Journal ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/journals/{id} [delete]
func (h *JournalHandler) Delete(c *gin.Context) {
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
