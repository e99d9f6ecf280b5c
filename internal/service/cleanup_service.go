package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type cleanupRepository interface {
	Purge(ctx context.Context, classID int64, date string) (models.CleanupResult, error)
}

// CleanupRequest names the class and day to reset.
type CleanupRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	ClassID int64  `json:"classId" validate:"required,gt=0"`
}

// CleanupService resets one class's grades, attendance and journals for a day.
type CleanupService struct {
	repo      cleanupRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCleanupService constructs CleanupService.
func NewCleanupService(repo cleanupRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CleanupService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleanupService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Cleanup purges the day atomically and reports how many rows went away.
func (s *CleanupService) Cleanup(ctx context.Context, req CleanupRequest) (*models.CleanupResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Parameter tanggal dan ID Kelas dibutuhkan")
	}
	result, err := s.repo.Purge(ctx, req.ClassID, req.Date)
	if err != nil {
		return nil, mapStoreError(s.logger, "daily cleanup", err, storeMessages{internal: "Gagal membersihkan data harian"})
	}
	s.metrics.RecordCleanup(result.DeletedGrades, result.DeletedStatuses, result.DeletedJournals)
	s.cache.Delete(ctx, HistoryCacheKey)
	s.logger.Info("daily data cleaned",
		zap.Int64("class_id", req.ClassID),
		zap.String("date", req.Date),
		zap.Int64("grades", result.DeletedGrades),
		zap.Int64("statuses", result.DeletedStatuses),
		zap.Int64("journals", result.DeletedJournals),
	)
	return &result, nil
}
