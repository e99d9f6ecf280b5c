package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

func TestNoteRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(listNotesQuery)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "note_text", "formatted_date"}).
			AddRow(9, "Terlambat", "16 Jan 2024, 07:15").
			AddRow(8, "Aktif bertanya", "15 Jan 2024, 09:00"))

	notes, err := repo.ListByStudent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, int64(9), notes[0].ID)
	assert.Equal(t, "16 Jan 2024, 07:15", notes[0].FormattedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	now := time.Date(2024, 1, 16, 7, 15, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(insertNoteQuery)).
		WithArgs(int64(2), "Terlambat").
		WillReturnRows(sqlmock.NewRows([]string{"id", "note_date"}).AddRow(9, now))

	note := &models.Note{StudentID: 2, NoteText: "Terlambat"}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, int64(9), note.ID)
	assert.Equal(t, now, note.NoteDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryDeleteLastNote(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(noteOwnerQuery)).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(deleteNoteByQuery)).WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(hasNotesQuery)).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectCommit()

	studentID, hasNotes, err := repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), studentID)
	assert.False(t, hasNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewNoteRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(noteOwnerQuery)).WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.Delete(context.Background(), 404)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
