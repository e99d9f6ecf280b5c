package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const monthlyReportQuery = `SELECT s.id AS student_id, s.nipd, s.full_name,
    COALESCE(g.grade_sum, 0) AS grade_sum, COALESCE(g.grade_count, 0) AS grade_count,
    COALESCE(sc.excused, 0) AS excused, COALESCE(sc.sick, 0) AS sick, COALESCE(sc.absent, 0) AS absent,
    COALESCE(n.notes, '') AS notes
FROM students s
LEFT JOIN (
    SELECT student_id, SUM(grade) AS grade_sum, COUNT(*) AS grade_count
    FROM student_grades WHERE grade_date >= $2 AND grade_date < $3 GROUP BY student_id
) g ON g.student_id = s.id
LEFT JOIN (
    SELECT student_id,
        COUNT(*) FILTER (WHERE status = 'Izin') AS excused,
        COUNT(*) FILTER (WHERE status = 'Sakit') AS sick,
        COUNT(*) FILTER (WHERE status = 'Alpa') AS absent
    FROM student_status WHERE status_date >= $2 AND status_date < $3 GROUP BY student_id
) sc ON sc.student_id = s.id
LEFT JOIN (
    SELECT student_id, STRING_AGG(note_text, E'\n' ORDER BY note_date) AS notes
    FROM student_notes WHERE note_date >= $2 AND note_date < $3 GROUP BY student_id
) n ON n.student_id = s.id
WHERE s.class_id = $1
ORDER BY s.full_name ASC`

// ReportRepository aggregates monthly activity per student.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// MonthlyRows returns one row per student of the class, including students
// without any activity between start (inclusive) and end (exclusive).
func (r *ReportRepository) MonthlyRows(ctx context.Context, classID int64, start, end string) ([]models.MonthlyReportRow, error) {
	var rows []models.MonthlyReportRow
	if err := r.db.SelectContext(ctx, &rows, monthlyReportQuery, classID, start, end); err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	return rows, nil
}
