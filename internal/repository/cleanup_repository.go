package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const (
	cleanupGradesQuery   = `DELETE FROM student_grades WHERE grade_date = $1 AND student_id IN (SELECT id FROM students WHERE class_id = $2)`
	cleanupStatusesQuery = `DELETE FROM student_status WHERE status_date = $1 AND student_id IN (SELECT id FROM students WHERE class_id = $2)`
	cleanupJournalsQuery = `DELETE FROM class_journals WHERE journal_date = $1 AND class_id = $2`
)

// CleanupRepository purges one class's dated data for a single day.
type CleanupRepository struct {
	db *sqlx.DB
}

// NewCleanupRepository constructs a CleanupRepository.
func NewCleanupRepository(db *sqlx.DB) *CleanupRepository {
	return &CleanupRepository{db: db}
}

// Purge deletes the grades and statuses of the class's students and the
// class's journals dated date. Either all three deletions apply or none do.
func (r *CleanupRepository) Purge(ctx context.Context, classID int64, date string) (result models.CleanupResult, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin cleanup: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	steps := []struct {
		name  string
		query string
		count *int64
	}{
		{"grades", cleanupGradesQuery, &result.DeletedGrades},
		{"statuses", cleanupStatusesQuery, &result.DeletedStatuses},
		{"journals", cleanupJournalsQuery, &result.DeletedJournals},
	}
	for _, step := range steps {
		res, execErr := tx.ExecContext(ctx, step.query, date, classID)
		if execErr != nil {
			err = fmt.Errorf("cleanup %s: %w", step.name, execErr)
			return models.CleanupResult{}, err
		}
		if *step.count, err = res.RowsAffected(); err != nil {
			err = fmt.Errorf("cleanup %s rows affected: %w", step.name, err)
			return models.CleanupResult{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return models.CleanupResult{}, fmt.Errorf("commit cleanup: %w", err)
	}
	return result, nil
}
