package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

// historyQuery yields one row per (class, month) with data, plus a single row
// with a NULL month for classes without any dated data.
const historyQuery = `WITH journal_months AS (
    SELECT DISTINCT class_id, TO_CHAR(journal_date, 'YYYY-MM') AS month FROM class_journals
), record_months AS (
    SELECT s.class_id, TO_CHAR(g.grade_date, 'YYYY-MM') AS month
    FROM student_grades g JOIN students s ON s.id = g.student_id WHERE s.class_id IS NOT NULL
    UNION
    SELECT s.class_id, TO_CHAR(st.status_date, 'YYYY-MM') AS month
    FROM student_status st JOIN students s ON s.id = st.student_id WHERE s.class_id IS NOT NULL
), months AS (
    SELECT class_id, month FROM journal_months
    UNION
    SELECT class_id, month FROM record_months
)
SELECT c.id AS class_id, c.class_name, m.month,
    (j.month IS NOT NULL) AS has_journal,
    (r.month IS NOT NULL) AS has_grades
FROM classes c
LEFT JOIN months m ON m.class_id = c.id
LEFT JOIN journal_months j ON j.class_id = c.id AND j.month = m.month
LEFT JOIN record_months r ON r.class_id = c.id AND r.month = m.month
ORDER BY c.class_name ASC, m.month DESC`

// HistoryRepository reads the per-class monthly coverage of stored data.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository constructs a HistoryRepository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Rows returns the flat coverage rows for every class.
func (r *HistoryRepository) Rows(ctx context.Context) ([]models.HistoryRow, error) {
	var rows []models.HistoryRow
	if err := r.db.SelectContext(ctx, &rows, historyQuery); err != nil {
		return nil, fmt.Errorf("history summary: %w", err)
	}
	return rows, nil
}
