package models

import "time"

// JournalDateLayout is the fixed format journal dates are returned in.
const JournalDateLayout = "2006-01-02"

// ClassJournal is a per-class, per-date record of what was taught.
type ClassJournal struct {
	ID                  int64     `db:"id" json:"id"`
	ClassID             int64     `db:"class_id" json:"class_id"`
	JournalDate         string    `db:"journal_date" json:"journal_date"`
	LearningAchievement string    `db:"learning_achievement" json:"learning_achievement"`
	MaterialElement     string    `db:"material_element" json:"material_element"`
	Agenda              string    `db:"agenda" json:"agenda"`
	Method              string    `db:"method" json:"method"`
	IsActive            bool      `db:"is_active" json:"is_active"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
