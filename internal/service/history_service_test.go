package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

type historyRepoStub struct {
	rows  []models.HistoryRow
	calls int
}

func (s *historyRepoStub) Rows(context.Context) ([]models.HistoryRow, error) {
	s.calls++
	return s.rows, nil
}

func month(m string) *string { return &m }

func TestBuildHistorySeparatesJournalAndRecordMonths(t *testing.T) {
	rows := []models.HistoryRow{
		{ClassID: 1, ClassName: "X IPA 1", Month: month("2024-02"), HasGrades: true},
		{ClassID: 1, ClassName: "X IPA 1", Month: month("2024-01"), HasJournal: true},
	}

	summary := BuildHistory(rows)
	require.Len(t, summary, 1)
	assert.Equal(t, []models.HistoryMonth{
		{Month: "2024-02", HasJournal: false, HasGrades: true},
		{Month: "2024-01", HasJournal: true, HasGrades: false},
	}, summary[0].Months)
}

func TestBuildHistoryMergesSortsAndDropsEmptyMonths(t *testing.T) {
	rows := []models.HistoryRow{
		{ClassID: 2, ClassName: "X IPA 2", Month: month("2023-11"), HasJournal: true},
		{ClassID: 2, ClassName: "X IPA 2", Month: month("2024-03"), HasGrades: true},
		{ClassID: 2, ClassName: "X IPA 2", Month: month("2023-11"), HasGrades: true},
		{ClassID: 2, ClassName: "X IPA 2", Month: month("2024-01")},
		{ClassID: 1, ClassName: "XI IPS 1", Month: nil},
	}

	summary := BuildHistory(rows)
	require.Len(t, summary, 2)
	assert.Equal(t, int64(2), summary[0].ClassID)
	assert.Equal(t, []models.HistoryMonth{
		{Month: "2024-03", HasGrades: true},
		{Month: "2023-11", HasJournal: true, HasGrades: true},
	}, summary[0].Months)
	assert.Equal(t, "XI IPS 1", summary[1].ClassName)
	assert.NotNil(t, summary[1].Months)
	assert.Empty(t, summary[1].Months)
}

func TestHistoryServiceUsesCache(t *testing.T) {
	repo := &historyRepoStub{rows: []models.HistoryRow{{ClassID: 1, ClassName: "X", Month: month("2024-01"), HasJournal: true}}}
	cache := NewCacheService(newMemoryCacheRepo(), nil, 0, nil, true)
	svc := NewHistoryService(repo, cache, nil)
	ctx := context.Background()

	first, hit, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)

	cache.Delete(ctx, HistoryCacheKey)
	_, hit, err = svc.Summary(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, repo.calls)
}
