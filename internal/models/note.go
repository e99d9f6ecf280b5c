package models

import "time"

// Note is an append-only free text entry about a student.
type Note struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	NoteDate  time.Time `db:"note_date" json:"note_date"`
	NoteText  string    `db:"note_text" json:"note_text"`
}

// NoteView is the list projection with a display formatted timestamp.
type NoteView struct {
	ID            int64  `db:"id" json:"id"`
	NoteText      string `db:"note_text" json:"note_text"`
	FormattedDate string `db:"formatted_date" json:"formatted_date"`
}
