package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

type historyRepository interface {
	Rows(ctx context.Context) ([]models.HistoryRow, error)
}

// HistoryService builds the per-class index of months that hold data.
type HistoryService struct {
	repo   historyRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewHistoryService constructs HistoryService.
func NewHistoryService(repo historyRepository, cache *CacheService, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{repo: repo, cache: cache, logger: logger}
}

// Summary returns one entry per class. The bool reports a cache hit.
func (s *HistoryService) Summary(ctx context.Context) ([]models.ClassHistory, bool, error) {
	var cached []models.ClassHistory
	if hit, _ := s.cache.Get(ctx, HistoryCacheKey, &cached); hit {
		return cached, true, nil
	}

	rows, err := s.repo.Rows(ctx)
	if err != nil {
		return nil, false, mapStoreError(s.logger, "history summary", err, storeMessages{internal: "Gagal mengambil riwayat data"})
	}
	summary := BuildHistory(rows)
	_ = s.cache.Set(ctx, HistoryCacheKey, summary, 0)
	return summary, false, nil
}

// BuildHistory groups flat coverage rows by class, keeping the order in which
// classes first appear. Months are merged, newest first, and a month is only
// kept when at least one of its flags is set.
func BuildHistory(rows []models.HistoryRow) []models.ClassHistory {
	result := make([]models.ClassHistory, 0)
	index := make(map[int64]int)
	months := make(map[int64]map[string]*models.HistoryMonth)

	for _, row := range rows {
		if _, ok := index[row.ClassID]; !ok {
			index[row.ClassID] = len(result)
			result = append(result, models.ClassHistory{ClassID: row.ClassID, ClassName: row.ClassName, Months: []models.HistoryMonth{}})
			months[row.ClassID] = make(map[string]*models.HistoryMonth)
		}
		if row.Month == nil || *row.Month == "" || (!row.HasJournal && !row.HasGrades) {
			continue
		}
		entry, ok := months[row.ClassID][*row.Month]
		if !ok {
			entry = &models.HistoryMonth{Month: *row.Month}
			months[row.ClassID][*row.Month] = entry
		}
		entry.HasJournal = entry.HasJournal || row.HasJournal
		entry.HasGrades = entry.HasGrades || row.HasGrades
	}

	for i := range result {
		for _, entry := range months[result[i].ClassID] {
			result[i].Months = append(result[i].Months, *entry)
		}
		sort.Slice(result[i].Months, func(a, b int) bool {
			return result[i].Months[a].Month > result[i].Months[b].Month
		})
	}
	return result
}
