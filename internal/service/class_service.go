package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassRequest captures the create and update payload.
type ClassRequest struct {
	ClassName       string  `json:"className" validate:"required,max=50"`
	HomeroomTeacher *string `json:"homeroomTeacher" validate:"omitempty,max=100"`
}

var classMessages = storeMessages{
	notFound: "Kelas tidak ditemukan",
	conflict: "Nama kelas sudah ada",
	internal: "Gagal menyimpan kelas",
}

// ClassService coordinates class operations.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every class ordered by name. The bool reports a cache hit.
func (s *ClassService) List(ctx context.Context) ([]models.Class, bool, error) {
	var cached []models.Class
	if hit, _ := s.cache.Get(ctx, ClassesCacheKey, &cached); hit {
		return cached, true, nil
	}

	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, mapStoreError(s.logger, "list classes", err, storeMessages{internal: "Gagal mengambil data kelas"})
	}
	if classes == nil {
		classes = []models.Class{}
	}
	_ = s.cache.Set(ctx, ClassesCacheKey, classes, 0)
	return classes, false, nil
}

// Create adds a new class.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.Class, error) {
	class, err := s.classFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, mapStoreError(s.logger, "create class", err, storeMessages{conflict: classMessages.conflict, internal: "Gagal menambahkan kelas"})
	}
	s.invalidate(ctx)
	return class, nil
}

// Update renames a class or changes its homeroom teacher.
func (s *ClassService) Update(ctx context.Context, id int64, req ClassRequest) (*models.Class, error) {
	class, err := s.classFromRequest(req)
	if err != nil {
		return nil, err
	}
	class.ID = id
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, mapStoreError(s.logger, "update class", err, storeMessages{notFound: classMessages.notFound, conflict: classMessages.conflict, internal: "Gagal memperbarui kelas"})
	}
	s.invalidate(ctx)
	return class, nil
}

// Delete removes a class with all of its dependent data.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, "delete class", err, storeMessages{notFound: classMessages.notFound, internal: "Gagal menghapus kelas"})
	}
	s.invalidate(ctx)
	return nil
}

func (s *ClassService) classFromRequest(req ClassRequest) (*models.Class, error) {
	req.ClassName = strings.TrimSpace(req.ClassName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Nama kelas wajib diisi")
	}
	class := &models.Class{ClassName: req.ClassName}
	if req.HomeroomTeacher != nil {
		teacher := strings.TrimSpace(*req.HomeroomTeacher)
		if teacher != "" {
			class.HomeroomTeacher = &teacher
		}
	}
	return class, nil
}

func (s *ClassService) invalidate(ctx context.Context) {
	s.cache.Delete(ctx, ClassesCacheKey, HistoryCacheKey)
}
