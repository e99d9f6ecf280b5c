package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
	"github.com/noah-isme/jurnal-kelas-api/pkg/export"
)

type journalRepository interface {
	ListByDate(ctx context.Context, classID int64, date string) ([]models.ClassJournal, error)
	ListByMonth(ctx context.Context, classID int64, start, end string) ([]models.ClassJournal, error)
	Create(ctx context.Context, journal *models.ClassJournal) error
	Update(ctx context.Context, journal *models.ClassJournal) error
	Delete(ctx context.Context, id int64) error
}

// JournalDateQuery selects a class's journals on one date.
type JournalDateQuery struct {
	ClassID int64  `form:"classId" validate:"required,gt=0"`
	Date    string `form:"date" validate:"required,datetime=2006-01-02"`
}

// JournalMonthQuery selects a class's journals in one month.
type JournalMonthQuery struct {
	ClassID int64  `form:"classId" validate:"required,gt=0"`
	Month   string `form:"month" validate:"required,month_key"`
	Format  string `form:"format"`
}

// JournalContent holds the editable fields of a journal. Text fields must be
// present but may be empty.
type JournalContent struct {
	JournalDate         string  `json:"journalDate" validate:"required,datetime=2006-01-02"`
	LearningAchievement *string `json:"learningAchievement" validate:"required"`
	MaterialElement     *string `json:"materialElement" validate:"required"`
	Agenda              *string `json:"agenda" validate:"required"`
	Method              *string `json:"method" validate:"required"`
	IsActive            *bool   `json:"isActive" validate:"required"`
}

// CreateJournalRequest creates a journal for a class.
type CreateJournalRequest struct {
	ClassID int64 `json:"classId" validate:"required,gt=0"`
	JournalContent
}

// UpdateJournalRequest rewrites a journal. The date is mandatory.
type UpdateJournalRequest struct {
	JournalContent
}

var (
	journalMonthHeaders = []string{"Tanggal", "Capaian Pembelajaran", "Elemen Materi", "Agenda", "Metode", "Status"}
	journalMonthWidths  = []float64{12, 40, 30, 40, 25, 12}
)

// JournalService manages class teaching journals.
type JournalService struct {
	repo      journalRepository
	renderer  datasetRenderer
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJournalService constructs JournalService.
func NewJournalService(repo journalRepository, renderer datasetRenderer, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *JournalService {
	if renderer == nil {
		renderer = export.NewRegistry()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{repo: repo, renderer: renderer, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// ListByDate returns a class's journals for one date, newest entry first.
func (s *JournalService) ListByDate(ctx context.Context, query JournalDateQuery) ([]models.ClassJournal, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "Parameter classId dan date dibutuhkan")
	}
	journals, err := s.repo.ListByDate(ctx, query.ClassID, query.Date)
	if err != nil {
		return nil, mapStoreError(s.logger, "list journals", err, storeMessages{internal: "Gagal mengambil data jurnal"})
	}
	return nonNilJournals(journals), nil
}

// ListByMonth returns a class's journals in a month, oldest date first.
func (s *JournalService) ListByMonth(ctx context.Context, query JournalMonthQuery) ([]models.ClassJournal, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "Parameter classId dan month dibutuhkan")
	}
	start, end, _ := models.MonthRange(query.Month)
	journals, err := s.repo.ListByMonth(ctx, query.ClassID, start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, mapStoreError(s.logger, "list monthly journals", err, storeMessages{internal: "Gagal mengambil data jurnal bulanan"})
	}
	return nonNilJournals(journals), nil
}

// MonthlyFile renders a month of journals as a spreadsheet download.
func (s *JournalService) MonthlyFile(ctx context.Context, query JournalMonthQuery) (*ReportFile, error) {
	journals, err := s.ListByMonth(ctx, query)
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(query.Format)
	if err != nil {
		return nil, appErrors.Validation(err, "Format laporan tidak didukung")
	}

	payload, err := s.renderer.Render(format, JournalMonthDataset(query.Month, journals))
	if err != nil {
		s.logger.Error("render journal report failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Internal(err, "Gagal membuat laporan jurnal")
	}
	s.metrics.RecordReport("journals", string(format))

	return &ReportFile{
		Filename:    fmt.Sprintf("jurnal_%s.%s", query.Month, format.Extension()),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

// Create stores a journal for a class.
func (s *JournalService) Create(ctx context.Context, req CreateJournalRequest) (*models.ClassJournal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Data jurnal tidak lengkap")
	}
	journal := req.JournalContent.apply(&models.ClassJournal{ClassID: req.ClassID})
	if err := s.repo.Create(ctx, journal); err != nil {
		return nil, mapStoreError(s.logger, "create journal", err, storeMessages{notFound: "Kelas tidak ditemukan", internal: "Gagal menyimpan jurnal"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return journal, nil
}

// Update rewrites a journal. A request without a date is rejected before
// touching storage.
func (s *JournalService) Update(ctx context.Context, id int64, req UpdateJournalRequest) (*models.ClassJournal, error) {
	if strings.TrimSpace(req.JournalDate) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Parameter tanggal dibutuhkan")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Data jurnal tidak lengkap")
	}
	journal := req.JournalContent.apply(&models.ClassJournal{ID: id})
	if err := s.repo.Update(ctx, journal); err != nil {
		return nil, mapStoreError(s.logger, "update journal", err, storeMessages{notFound: "Jurnal tidak ditemukan", internal: "Gagal memperbarui jurnal"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return journal, nil
}

// Delete removes a journal.
func (s *JournalService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, "delete journal", err, storeMessages{notFound: "Jurnal tidak ditemukan", internal: "Gagal menghapus jurnal"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return nil
}

// JournalMonthDataset lays out a month of journals as a table.
func JournalMonthDataset(month string, journals []models.ClassJournal) export.Dataset {
	data := export.Dataset{
		Title:     "Jurnal Kelas " + month,
		SheetName: "Jurnal Kelas",
		Headers:   journalMonthHeaders,
		Widths:    journalMonthWidths,
		Rows:      make([][]interface{}, 0, len(journals)),
	}
	for _, j := range journals {
		status := "Tidak Aktif"
		if j.IsActive {
			status = "Aktif"
		}
		data.Rows = append(data.Rows, []interface{}{j.JournalDate, j.LearningAchievement, j.MaterialElement, j.Agenda, j.Method, status})
	}
	return data
}

func (c JournalContent) apply(journal *models.ClassJournal) *models.ClassJournal {
	journal.JournalDate = c.JournalDate
	journal.LearningAchievement = deref(c.LearningAchievement)
	journal.MaterialElement = deref(c.MaterialElement)
	journal.Agenda = deref(c.Agenda)
	journal.Method = deref(c.Method)
	journal.IsActive = c.IsActive != nil && *c.IsActive
	return journal
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNilJournals(journals []models.ClassJournal) []models.ClassJournal {
	if journals == nil {
		return []models.ClassJournal{}
	}
	return journals
}
