package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const (
	listNotesQuery = `SELECT id, note_text, TO_CHAR(note_date, 'DD Mon YYYY, HH24:MI') AS formatted_date
FROM student_notes WHERE student_id = $1 ORDER BY note_date DESC`
	noteOwnerQuery    = `SELECT student_id FROM student_notes WHERE id = $1 FOR UPDATE`
	hasNotesQuery     = `SELECT EXISTS (SELECT 1 FROM student_notes WHERE student_id = $1)`
	insertNoteQuery   = `INSERT INTO student_notes (student_id, note_text) VALUES ($1, $2) RETURNING id, note_date`
	deleteNoteByQuery = `DELETE FROM student_notes WHERE id = $1`
)

// NoteRepository persists append-only student notes.
type NoteRepository struct {
	db *sqlx.DB
}

// NewNoteRepository constructs a NoteRepository.
func NewNoteRepository(db *sqlx.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// ListByStudent returns a student's notes, newest first.
func (r *NoteRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.NoteView, error) {
	var notes []models.NoteView
	if err := r.db.SelectContext(ctx, &notes, listNotesQuery, studentID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Create appends a note stamped with the server time.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if err := r.db.QueryRowxContext(ctx, insertNoteQuery, note.StudentID, note.NoteText).Scan(&note.ID, &note.NoteDate); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Delete removes a note and reports whether its student still has any notes.
// A missing note yields sql.ErrNoRows.
func (r *NoteRepository) Delete(ctx context.Context, id int64) (studentID int64, hasNotes bool, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("begin delete note: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = tx.GetContext(ctx, &studentID, noteOwnerQuery, id); err != nil {
		return 0, false, fmt.Errorf("find note owner: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteNoteByQuery, id); err != nil {
		return 0, false, fmt.Errorf("delete note: %w", err)
	}
	if err = tx.GetContext(ctx, &hasNotes, hasNotesQuery, studentID); err != nil {
		return 0, false, fmt.Errorf("check remaining notes: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("commit delete note: %w", err)
	}
	return studentID, hasNotes, nil
}
