package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const (
	journalColumns = `id, class_id, TO_CHAR(journal_date, 'YYYY-MM-DD') AS journal_date,
COALESCE(learning_achievement, '') AS learning_achievement, COALESCE(material_element, '') AS material_element,
COALESCE(agenda, '') AS agenda, COALESCE(method, '') AS method, COALESCE(is_active, true) AS is_active, created_at, updated_at`
	journalsByDateQuery  = `SELECT ` + journalColumns + ` FROM class_journals WHERE class_id = $1 AND journal_date = $2 ORDER BY created_at DESC, id DESC`
	journalsByMonthQuery = `SELECT ` + journalColumns + ` FROM class_journals WHERE class_id = $1 AND journal_date >= $2 AND journal_date < $3 ORDER BY journal_date ASC, id ASC`
	insertJournalQuery   = `INSERT INTO class_journals (class_id, journal_date, learning_achievement, material_element, agenda, method, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + journalColumns
	updateJournalQuery = `UPDATE class_journals SET journal_date = $1, learning_achievement = $2, material_element = $3,
agenda = $4, method = $5, is_active = $6, updated_at = NOW() WHERE id = $7 RETURNING ` + journalColumns
)

// JournalRepository persists class teaching journals.
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository constructs a JournalRepository.
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// ListByDate returns a class's journals for one date, newest entry first.
func (r *JournalRepository) ListByDate(ctx context.Context, classID int64, date string) ([]models.ClassJournal, error) {
	var journals []models.ClassJournal
	if err := r.db.SelectContext(ctx, &journals, journalsByDateQuery, classID, date); err != nil {
		return nil, fmt.Errorf("list journals by date: %w", err)
	}
	return journals, nil
}

// ListByMonth returns a class's journals dated within [start, end), oldest date first.
func (r *JournalRepository) ListByMonth(ctx context.Context, classID int64, start, end string) ([]models.ClassJournal, error) {
	var journals []models.ClassJournal
	if err := r.db.SelectContext(ctx, &journals, journalsByMonthQuery, classID, start, end); err != nil {
		return nil, fmt.Errorf("list journals by month: %w", err)
	}
	return journals, nil
}

// Create stores a journal and refreshes it with the stored values.
func (r *JournalRepository) Create(ctx context.Context, journal *models.ClassJournal) error {
	if err := r.db.QueryRowxContext(ctx, insertJournalQuery, journal.ClassID, journal.JournalDate, journal.LearningAchievement,
		journal.MaterialElement, journal.Agenda, journal.Method, journal.IsActive).StructScan(journal); err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	return nil
}

// Update rewrites a journal's date and content; the class never changes.
// A missing journal yields sql.ErrNoRows.
func (r *JournalRepository) Update(ctx context.Context, journal *models.ClassJournal) error {
	if err := r.db.QueryRowxContext(ctx, updateJournalQuery, journal.JournalDate, journal.LearningAchievement,
		journal.MaterialElement, journal.Agenda, journal.Method, journal.IsActive, journal.ID).StructScan(journal); err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	return nil
}

// Delete removes a journal. A missing journal yields sql.ErrNoRows.
func (r *JournalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_journals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return expectAffected(res, "delete journal")
}
