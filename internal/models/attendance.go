package models

import "time"

// AttendanceStatus is stored using the school's own vocabulary.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Hadir"
	AttendanceStatusExcused AttendanceStatus = "Izin"
	AttendanceStatusSick    AttendanceStatus = "Sakit"
	AttendanceStatusAbsent  AttendanceStatus = "Alpa"
)

// DefaultAttendanceStatus applies when no record exists for a (student, date).
const DefaultAttendanceStatus = AttendanceStatusPresent

// DefaultGrade applies when no grade record exists for a (student, date).
const DefaultGrade = 0

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusExcused, AttendanceStatusSick, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is the sparse per-day status of a student.
type AttendanceRecord struct {
	ID         int64            `db:"id" json:"id"`
	StudentID  int64            `db:"student_id" json:"student_id"`
	StatusDate time.Time        `db:"status_date" json:"status_date"`
	Status     AttendanceStatus `db:"status" json:"status"`
}

// GradeRecord is the sparse per-day grade of a student.
type GradeRecord struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	GradeDate time.Time `db:"grade_date" json:"grade_date"`
	Grade     int       `db:"grade" json:"grade"`
}

// DailyStateRow is a roster row left-joined with the records of one date.
// Grade and Status are nil when no record exists for that date.
type DailyStateRow struct {
	ID       int64             `db:"id"`
	NIPD     string            `db:"nipd"`
	FullName string            `db:"full_name"`
	Gender   *string           `db:"gender"`
	Grade    *int              `db:"grade"`
	Status   *AttendanceStatus `db:"status"`
	HasNotes bool              `db:"has_notes"`
}

// StudentDailyState is the effective state of a student on a date.
type StudentDailyState struct {
	ID       int64            `json:"id"`
	NIPD     string           `json:"nipd"`
	FullName string           `json:"full_name"`
	Gender   *string          `json:"gender"`
	Grade    int              `json:"grade"`
	Status   AttendanceStatus `json:"status"`
	HasNotes bool             `json:"has_notes"`
}

// Resolve fills absent records with the baseline values.
func (r DailyStateRow) Resolve() StudentDailyState {
	state := StudentDailyState{
		ID:       r.ID,
		NIPD:     r.NIPD,
		FullName: r.FullName,
		Gender:   r.Gender,
		Grade:    DefaultGrade,
		Status:   DefaultAttendanceStatus,
		HasNotes: r.HasNotes,
	}
	if r.Grade != nil {
		state.Grade = *r.Grade
	}
	if r.Status != nil && *r.Status != "" {
		state.Status = *r.Status
	}
	return state
}
