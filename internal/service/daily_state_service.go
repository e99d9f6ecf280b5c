package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type dailyStateRepository interface {
	List(ctx context.Context, classID int64, date string) ([]models.DailyStateRow, error)
	UpsertGrade(ctx context.Context, studentID int64, date string, grade int) error
	UpsertStatus(ctx context.Context, studentID int64, date string, status models.AttendanceStatus) error
}

type classLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

// DailyStateQuery selects the class and date to resolve.
type DailyStateQuery struct {
	ClassID int64  `form:"classId" validate:"required,gt=0"`
	Date    string `form:"date" validate:"required,datetime=2006-01-02"`
}

// GradeRequest sets a student's grade for a date. Date defaults to today.
type GradeRequest struct {
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Grade *int   `json:"grade" validate:"required,min=0,max=100"`
}

// StatusRequest sets a student's attendance for a date. Date defaults to today.
type StatusRequest struct {
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,attendance_status"`
}

// InitialData is the first screen of the dashboard.
type InitialData struct {
	Classes  []models.Class             `json:"classes"`
	Students []models.StudentDailyState `json:"students"`
	ClassID  *int64                     `json:"class_id"`
	Date     string                     `json:"date"`
}

// DailyStateService resolves sparse dated grade and attendance records into
// a full roster view and records new values.
type DailyStateService struct {
	repo      dailyStateRepository
	classes   classLister
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewDailyStateService constructs DailyStateService. loc decides what "today" is.
func NewDailyStateService(repo dailyStateRepository, classes classLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *DailyStateService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DailyStateService{repo: repo, classes: classes, cache: cache, validator: validate, logger: logger, location: loc, now: time.Now}
}

// Today returns the current calendar date in the configured location.
func (s *DailyStateService) Today() string {
	return s.now().In(s.location).Format(models.DateLayout)
}

// List returns every student of the class with the grade and status in
// effect on the date. Absent records resolve to the defaults.
func (s *DailyStateService) List(ctx context.Context, query DailyStateQuery) ([]models.StudentDailyState, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "Parameter classId dan date dibutuhkan")
	}
	return s.resolve(ctx, query.ClassID, query.Date)
}

// SetGrade records a grade for (student, date), overwriting an earlier one.
func (s *DailyStateService) SetGrade(ctx context.Context, studentID int64, req GradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "Nilai harus berupa angka 0 sampai 100")
	}
	date := s.dateOrToday(req.Date)
	if err := s.repo.UpsertGrade(ctx, studentID, date, *req.Grade); err != nil {
		return mapStoreError(s.logger, "upsert grade", err, storeMessages{notFound: "Siswa tidak ditemukan", internal: "Gagal memperbarui nilai"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return nil
}

// SetStatus records attendance for (student, date), overwriting an earlier one.
func (s *DailyStateService) SetStatus(ctx context.Context, studentID int64, req StatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "Status kehadiran tidak valid")
	}
	date := s.dateOrToday(req.Date)
	if err := s.repo.UpsertStatus(ctx, studentID, date, models.AttendanceStatus(req.Status)); err != nil {
		return mapStoreError(s.logger, "upsert status", err, storeMessages{notFound: "Siswa tidak ditemukan", internal: "Gagal memperbarui status"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return nil
}

// InitialData returns all classes plus today's state of the first class by name.
func (s *DailyStateService) InitialData(ctx context.Context) (*InitialData, error) {
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, "list classes", err, storeMessages{internal: "Gagal mengambil data awal"})
	}
	data := &InitialData{Classes: classes, Students: []models.StudentDailyState{}, Date: s.Today()}
	if data.Classes == nil {
		data.Classes = []models.Class{}
	}
	if len(classes) == 0 {
		return data, nil
	}

	first := classes[0].ID
	data.ClassID = &first
	if data.Students, err = s.resolve(ctx, first, data.Date); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *DailyStateService) resolve(ctx context.Context, classID int64, date string) ([]models.StudentDailyState, error) {
	rows, err := s.repo.List(ctx, classID, date)
	if err != nil {
		return nil, mapStoreError(s.logger, "list daily state", err, storeMessages{internal: "Gagal mengambil data siswa"})
	}
	states := make([]models.StudentDailyState, 0, len(rows))
	for _, row := range rows {
		states = append(states, row.Resolve())
	}
	return states, nil
}

func (s *DailyStateService) dateOrToday(date string) string {
	if date == "" {
		return s.Today()
	}
	return date
}
