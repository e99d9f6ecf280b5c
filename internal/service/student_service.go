package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	BulkUpsert(ctx context.Context, classID int64, students []models.StudentImport) error
}

// StudentRequest captures the single create and update payload.
type StudentRequest struct {
	NIPD     string `json:"nipd" validate:"required,max=20"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Gender   string `json:"gender" validate:"omitempty,len=1"`
	ClassID  int64  `json:"classId" validate:"required,gt=0"`
}

// BulkImportRequest imports a roster into one class.
type BulkImportRequest struct {
	ClassID  int64                  `json:"classId" validate:"required,gt=0"`
	Students []models.StudentImport `json:"students" validate:"required,min=1,dive"`
}

var studentMessages = storeMessages{
	notFound: "Siswa tidak ditemukan",
	conflict: "NIPD sudah digunakan",
	internal: "Gagal menyimpan data siswa",
}

// StudentService manages the class rosters.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, "get student", err, storeMessages{notFound: studentMessages.notFound, internal: "Gagal mengambil data siswa"})
	}
	return student, nil
}

// Create adds a single student to a class.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	student, err := s.studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, mapStoreError(s.logger, "create student", err, storeMessages{notFound: "Kelas tidak ditemukan", conflict: studentMessages.conflict, internal: studentMessages.internal})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return student, nil
}

// Update changes a student's identity fields or class.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	student, err := s.studentFromRequest(req)
	if err != nil {
		return nil, err
	}
	student.ID = id
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, mapStoreError(s.logger, "update student", err, studentMessages)
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return student, nil
}

// Delete removes a student together with their records and notes.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, "delete student", err, storeMessages{notFound: studentMessages.notFound, internal: "Gagal menghapus siswa"})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return nil
}

// BulkImport upserts a roster by NIPD in a single transaction and returns
// the number of students processed.
func (s *StudentService) BulkImport(ctx context.Context, req BulkImportRequest) (int, error) {
	for i := range req.Students {
		req.Students[i].NIPD = strings.TrimSpace(req.Students[i].NIPD)
		req.Students[i].Name = strings.TrimSpace(req.Students[i].Name)
		req.Students[i].Gender = strings.ToUpper(strings.TrimSpace(req.Students[i].Gender))
	}
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Validation(err, "Data tidak valid")
	}
	if err := s.repo.BulkUpsert(ctx, req.ClassID, req.Students); err != nil {
		return 0, mapStoreError(s.logger, "bulk import students", err, storeMessages{notFound: "Kelas tidak ditemukan", internal: studentMessages.internal})
	}
	s.cache.Delete(ctx, HistoryCacheKey)
	return len(req.Students), nil
}

func (s *StudentService) studentFromRequest(req StudentRequest) (*models.Student, error) {
	req.NIPD = strings.TrimSpace(req.NIPD)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Gender = strings.ToUpper(strings.TrimSpace(req.Gender))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Data siswa tidak valid")
	}
	classID := req.ClassID
	student := &models.Student{NIPD: req.NIPD, FullName: req.FullName, ClassID: &classID}
	if req.Gender != "" {
		gender := req.Gender
		student.Gender = &gender
	}
	return student, nil
}
