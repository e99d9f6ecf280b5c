package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type reportService interface {
	Monthly(ctx context.Context, query service.MonthlyReportQuery) (*service.ReportFile, error)
}

// ReportHandler streams the monthly class report.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Monthly godoc
// @Summary Monthly attendance and grade report
// @Description One row per student with the month's average grade, absence counts and notes
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param classId query int true "Class ID"
// @Param month query string true "Month (YYYY-MM)"
// @Param format query string false "xlsx (default), csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /api/report/excel [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	var query service.MonthlyReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, invalidQuery(err))
		return
	}
	file, err := h.service.Monthly(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
