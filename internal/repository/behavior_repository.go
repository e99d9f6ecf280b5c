package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

// Errors returned when the student of a behavior note cannot supply its class.
var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrStudentUnassigned = errors.New("student is not assigned to a class")
)

const (
	behaviorColumns = `b.id, b.student_id, b.class_id, b.note_date, b.category, COALESCE(b.note_text, '') AS note_text,
b.created_at, b.updated_at, s.full_name AS student_name, c.class_name`
	behaviorFrom       = `FROM behavior_notes b JOIN students s ON s.id = b.student_id JOIN classes c ON c.id = b.class_id`
	studentClassQuery  = `SELECT class_id FROM students WHERE id = $1`
	insertBehaviorNote = `INSERT INTO behavior_notes (student_id, class_id, note_date, category, note_text)
VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	updateBehaviorNote = `UPDATE behavior_notes SET student_id = $1, class_id = $2, note_date = $3, category = $4, note_text = $5, updated_at = NOW()
WHERE id = $6 RETURNING created_at, updated_at`
)

// BehaviorRepository persists categorized behavior notes.
type BehaviorRepository struct {
	db *sqlx.DB
}

// NewBehaviorRepository constructs a BehaviorRepository.
func NewBehaviorRepository(db *sqlx.DB) *BehaviorRepository {
	return &BehaviorRepository{db: db}
}

// List returns one page of notes, newest note date first, with the total
// number of matching notes.
func (r *BehaviorRepository) List(ctx context.Context, filter models.BehaviorNoteFilter) ([]models.BehaviorNoteDetail, int, error) {
	filter = filter.Normalize()

	var conditions []string
	var args []interface{}
	if filter.ClassID > 0 {
		args = append(args, filter.ClassID)
		conditions = append(conditions, fmt.Sprintf("b.class_id = $%d", len(args)))
	}
	if filter.StudentID > 0 {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("b.student_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("b.category = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf("SELECT %s %s%s ORDER BY b.note_date DESC, b.id DESC LIMIT %d OFFSET %d", behaviorColumns, behaviorFrom, where, filter.PageSize, offset)
	var notes []models.BehaviorNoteDetail
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list behavior notes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s%s", behaviorFrom, where), args...); err != nil {
		return nil, 0, fmt.Errorf("count behavior notes: %w", err)
	}
	return notes, total, nil
}

// Stats counts notes per category, optionally within one class.
func (r *BehaviorRepository) Stats(ctx context.Context, classID int64) ([]models.BehaviorCategoryStat, error) {
	query := "SELECT category, COUNT(*) AS total FROM behavior_notes"
	var args []interface{}
	if classID > 0 {
		query += " WHERE class_id = $1"
		args = append(args, classID)
	}
	query += " GROUP BY category ORDER BY total DESC, category ASC"

	var stats []models.BehaviorCategoryStat
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("behavior note stats: %w", err)
	}
	return stats, nil
}

// FindByID returns one note with its student and class names.
func (r *BehaviorRepository) FindByID(ctx context.Context, id int64) (*models.BehaviorNoteDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE b.id = $1", behaviorColumns, behaviorFrom)
	var note models.BehaviorNoteDetail
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create stores a note. The class is copied from the student inside the
// write transaction.
func (r *BehaviorRepository) Create(ctx context.Context, note *models.BehaviorNote) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create behavior note: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if note.ClassID, err = studentClass(ctx, tx, note.StudentID); err != nil {
		return err
	}
	if err = tx.QueryRowxContext(ctx, insertBehaviorNote, note.StudentID, note.ClassID, note.NoteDate, note.Category, note.NoteText).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return fmt.Errorf("create behavior note: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create behavior note: %w", err)
	}
	return nil
}

// Update rewrites a note, re-deriving its class from the (possibly new)
// student. A missing note yields sql.ErrNoRows.
func (r *BehaviorRepository) Update(ctx context.Context, note *models.BehaviorNote) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update behavior note: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if note.ClassID, err = studentClass(ctx, tx, note.StudentID); err != nil {
		return err
	}
	if err = tx.QueryRowxContext(ctx, updateBehaviorNote, note.StudentID, note.ClassID, note.NoteDate, note.Category, note.NoteText, note.ID).
		Scan(&note.CreatedAt, &note.UpdatedAt); err != nil {
		return fmt.Errorf("update behavior note: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update behavior note: %w", err)
	}
	return nil
}

// Delete removes a note. A missing note yields sql.ErrNoRows.
func (r *BehaviorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM behavior_notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete behavior note: %w", err)
	}
	return expectAffected(res, "delete behavior note")
}

func studentClass(ctx context.Context, tx *sqlx.Tx, studentID int64) (int64, error) {
	var classID sql.NullInt64
	if err := tx.GetContext(ctx, &classID, studentClassQuery, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrStudentNotFound
		}
		return 0, fmt.Errorf("find student class: %w", err)
	}
	if !classID.Valid {
		return 0, ErrStudentUnassigned
	}
	return classID.Int64, nil
}
