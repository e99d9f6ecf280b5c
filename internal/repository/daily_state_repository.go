package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const (
	dailyStateQuery = `SELECT s.id, s.nipd, s.full_name, s.gender, g.grade, st.status,
EXISTS (SELECT 1 FROM student_notes n WHERE n.student_id = s.id) AS has_notes
FROM students s
LEFT JOIN student_grades g ON g.student_id = s.id AND g.grade_date = $2
LEFT JOIN student_status st ON st.student_id = s.id AND st.status_date = $2
WHERE s.class_id = $1
ORDER BY s.full_name ASC`

	upsertGradeQuery = `INSERT INTO student_grades (student_id, grade_date, grade) VALUES ($1, $2, $3)
ON CONFLICT (student_id, grade_date) DO UPDATE SET grade = EXCLUDED.grade`

	upsertStatusQuery = `INSERT INTO student_status (student_id, status_date, status) VALUES ($1, $2, $3)
ON CONFLICT (student_id, status_date) DO UPDATE SET status = EXCLUDED.status`
)

// DailyStateRepository reads and writes the sparse per-date grade and
// attendance records.
type DailyStateRepository struct {
	db *sqlx.DB
}

// NewDailyStateRepository constructs a DailyStateRepository.
func NewDailyStateRepository(db *sqlx.DB) *DailyStateRepository {
	return &DailyStateRepository{db: db}
}

// List returns the class roster joined with the records stored for date.
// Missing records come back as nil fields.
func (r *DailyStateRepository) List(ctx context.Context, classID int64, date string) ([]models.DailyStateRow, error) {
	var rows []models.DailyStateRow
	if err := r.db.SelectContext(ctx, &rows, dailyStateQuery, classID, date); err != nil {
		return nil, fmt.Errorf("list daily state: %w", err)
	}
	return rows, nil
}

// UpsertGrade records the grade for (student, date), replacing any earlier value.
func (r *DailyStateRepository) UpsertGrade(ctx context.Context, studentID int64, date string, grade int) error {
	if _, err := r.db.ExecContext(ctx, upsertGradeQuery, studentID, date, grade); err != nil {
		return fmt.Errorf("upsert grade: %w", err)
	}
	return nil
}

// UpsertStatus records the attendance status for (student, date), replacing any earlier value.
func (r *DailyStateRepository) UpsertStatus(ctx context.Context, studentID int64, date string, status models.AttendanceStatus) error {
	if _, err := r.db.ExecContext(ctx, upsertStatusQuery, studentID, date, string(status)); err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}
