package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepositoryRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewHistoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(historyQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_name", "month", "has_journal", "has_grades"}).
			AddRow(1, "X IPA 1", "2024-02", false, true).
			AddRow(1, "X IPA 1", "2024-01", true, false).
			AddRow(2, "X IPA 2", nil, false, false))

	rows, err := repo.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-02", *rows[0].Month)
	assert.True(t, rows[0].HasGrades)
	assert.True(t, rows[1].HasJournal)
	assert.Nil(t, rows[2].Month)
	assert.NoError(t, mock.ExpectationsWereMet())
}
