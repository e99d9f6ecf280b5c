package models

import "time"

// BehaviorNote is a categorized observation about a student's conduct.
// ClassID is copied from the student on every write.
type BehaviorNote struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	NoteDate  time.Time `db:"note_date" json:"note_date"`
	Category  string    `db:"category" json:"category"`
	NoteText  string    `db:"note_text" json:"note_text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BehaviorNoteDetail joins a note with the names shown in listings.
type BehaviorNoteDetail struct {
	BehaviorNote
	StudentName string `db:"student_name" json:"student_name"`
	ClassName   string `db:"class_name" json:"class_name"`
}

// BehaviorNoteFilter allows listing notes.
type BehaviorNoteFilter struct {
	ClassID   int64
	StudentID int64
	Category  string
	Page      int
	PageSize  int
}

// BehaviorCategoryStat counts notes per category.
type BehaviorCategoryStat struct {
	Category string `db:"category" json:"category"`
	Total    int    `db:"total" json:"total"`
}

// Behavior note paging bounds.
const (
	DefaultBehaviorPageSize = 10
	MaxBehaviorPageSize     = 100
)

// Normalize clamps paging values into their supported range.
func (f BehaviorNoteFilter) Normalize() BehaviorNoteFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultBehaviorPageSize
	}
	if f.PageSize > MaxBehaviorPageSize {
		f.PageSize = MaxBehaviorPageSize
	}
	return f
}
