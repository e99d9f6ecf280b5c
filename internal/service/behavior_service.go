package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/repository"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type behaviorRepository interface {
	List(ctx context.Context, filter models.BehaviorNoteFilter) ([]models.BehaviorNoteDetail, int, error)
	Stats(ctx context.Context, classID int64) ([]models.BehaviorCategoryStat, error)
	FindByID(ctx context.Context, id int64) (*models.BehaviorNoteDetail, error)
	Create(ctx context.Context, note *models.BehaviorNote) error
	Update(ctx context.Context, note *models.BehaviorNote) error
	Delete(ctx context.Context, id int64) error
}

// BehaviorListQuery holds the listing filters and paging.
type BehaviorListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	ClassID   int64  `form:"classId"`
	StudentID int64  `form:"studentId"`
	Category  string `form:"category"`
}

// BehaviorNoteRequest is the create and update payload. The class is never
// taken from the client.
type BehaviorNoteRequest struct {
	StudentID int64  `json:"studentId" validate:"required,gt=0"`
	NoteDate  string `json:"noteDate" validate:"required"`
	Category  string `json:"category" validate:"required,max=50"`
	NoteText  string `json:"noteText"`
}

var behaviorNoteDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", models.DateLayout}

var behaviorMessages = storeMessages{
	notFound: "Catatan perilaku tidak ditemukan",
	internal: "Gagal menyimpan catatan perilaku",
}

// BehaviorService manages categorized behavior notes.
type BehaviorService struct {
	repo      behaviorRepository
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
}

// NewBehaviorService constructs BehaviorService. Note dates without a zone are read in loc.
func NewBehaviorService(repo behaviorRepository, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *BehaviorService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BehaviorService{repo: repo, validator: validate, logger: logger, location: loc}
}

// List returns one page of notes, newest first.
func (s *BehaviorService) List(ctx context.Context, query BehaviorListQuery) ([]models.BehaviorNoteDetail, *models.Pagination, error) {
	filter := models.BehaviorNoteFilter{
		ClassID:   query.ClassID,
		StudentID: query.StudentID,
		Category:  strings.TrimSpace(query.Category),
		Page:      query.Page,
		PageSize:  query.Limit,
	}.Normalize()

	notes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, mapStoreError(s.logger, "list behavior notes", err, storeMessages{internal: "Gagal mengambil catatan perilaku"})
	}
	if notes == nil {
		notes = []models.BehaviorNoteDetail{}
	}
	return notes, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Stats counts notes per category.
func (s *BehaviorService) Stats(ctx context.Context, classID int64) ([]models.BehaviorCategoryStat, error) {
	stats, err := s.repo.Stats(ctx, classID)
	if err != nil {
		return nil, mapStoreError(s.logger, "behavior stats", err, storeMessages{internal: "Gagal mengambil statistik catatan perilaku"})
	}
	if stats == nil {
		stats = []models.BehaviorCategoryStat{}
	}
	return stats, nil
}

// Get returns one note.
func (s *BehaviorService) Get(ctx context.Context, id int64) (*models.BehaviorNoteDetail, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, "get behavior note", err, storeMessages{notFound: behaviorMessages.notFound, internal: "Gagal mengambil catatan perilaku"})
	}
	return note, nil
}

// Create stores a note in the student's current class.
func (s *BehaviorService) Create(ctx context.Context, req BehaviorNoteRequest) (*models.BehaviorNote, error) {
	note, err := s.noteFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, s.writeError("create behavior note", err)
	}
	return note, nil
}

// Update rewrites a note; its class follows the student.
func (s *BehaviorService) Update(ctx context.Context, id int64, req BehaviorNoteRequest) (*models.BehaviorNote, error) {
	note, err := s.noteFromRequest(req)
	if err != nil {
		return nil, err
	}
	note.ID = id
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, s.writeError("update behavior note", err)
	}
	return note, nil
}

// Delete removes a note.
func (s *BehaviorService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, "delete behavior note", err, storeMessages{notFound: behaviorMessages.notFound, internal: "Gagal menghapus catatan perilaku"})
	}
	return nil
}

func (s *BehaviorService) noteFromRequest(req BehaviorNoteRequest) (*models.BehaviorNote, error) {
	req.Category = strings.TrimSpace(req.Category)
	req.NoteDate = strings.TrimSpace(req.NoteDate)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Siswa, tanggal, dan kategori wajib diisi")
	}
	date, err := s.parseNoteDate(req.NoteDate)
	if err != nil {
		return nil, appErrors.Validation(err, "Format tanggal tidak valid")
	}
	return &models.BehaviorNote{
		StudentID: req.StudentID,
		NoteDate:  date,
		Category:  req.Category,
		NoteText:  strings.TrimSpace(req.NoteText),
	}, nil
}

func (s *BehaviorService) parseNoteDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range behaviorNoteDateLayouts {
		t, err := time.ParseInLocation(layout, raw, s.location)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (s *BehaviorService) writeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrStudentNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, "Siswa tidak ditemukan")
	case errors.Is(err, repository.ErrStudentUnassigned):
		return appErrors.Validation(err, "Siswa belum terdaftar di kelas mana pun")
	}
	return mapStoreError(s.logger, op, err, behaviorMessages)
}
