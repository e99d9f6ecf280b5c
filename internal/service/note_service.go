package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type noteRepository interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.NoteView, error)
	Create(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64) (int64, bool, error)
}

// NoteRequest carries the text of a new note.
type NoteRequest struct {
	NoteText string `json:"noteText" validate:"required"`
}

// NoteResult tells the client whether the student still has notes after a change.
type NoteResult struct {
	ID        int64 `json:"id,omitempty"`
	StudentID int64 `json:"student_id"`
	HasNotes  bool  `json:"has_notes"`
}

// NoteService manages the append-only student notes.
type NoteService struct {
	repo      noteRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoteService constructs NoteService.
func NewNoteService(repo noteRepository, validate *validator.Validate, logger *zap.Logger) *NoteService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{repo: repo, validator: validate, logger: logger}
}

// List returns a student's notes, newest first.
func (s *NoteService) List(ctx context.Context, studentID int64) ([]models.NoteView, error) {
	notes, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, mapStoreError(s.logger, "list notes", err, storeMessages{internal: "Gagal mengambil catatan"})
	}
	if notes == nil {
		notes = []models.NoteView{}
	}
	return notes, nil
}

// Create appends a note for the student.
func (s *NoteService) Create(ctx context.Context, studentID int64, req NoteRequest) (*NoteResult, error) {
	req.NoteText = strings.TrimSpace(req.NoteText)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Catatan tidak boleh kosong")
	}
	note := &models.Note{StudentID: studentID, NoteText: req.NoteText}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, mapStoreError(s.logger, "create note", err, storeMessages{notFound: "Siswa tidak ditemukan", internal: "Gagal menyimpan catatan"})
	}
	return &NoteResult{ID: note.ID, StudentID: studentID, HasNotes: true}, nil
}

// Delete removes a note and reports whether the student has notes left.
func (s *NoteService) Delete(ctx context.Context, noteID int64) (*NoteResult, error) {
	studentID, hasNotes, err := s.repo.Delete(ctx, noteID)
	if err != nil {
		return nil, mapStoreError(s.logger, "delete note", err, storeMessages{notFound: "Catatan tidak ditemukan", internal: "Gagal menghapus catatan"})
	}
	return &NoteResult{StudentID: studentID, HasNotes: hasNotes}, nil
}
