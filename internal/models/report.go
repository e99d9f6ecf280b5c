package models

import "math"

// MonthlyReportRow aggregates one student's activity in a month.
type MonthlyReportRow struct {
	StudentID  int64  `db:"student_id"`
	NIPD       string `db:"nipd"`
	FullName   string `db:"full_name"`
	GradeSum   int    `db:"grade_sum"`
	GradeCount int    `db:"grade_count"`
	Excused    int    `db:"excused"`
	Sick       int    `db:"sick"`
	Absent     int    `db:"absent"`
	Notes      string `db:"notes"`
}

// AverageGrade is the month's mean grade rounded half away from zero, or 0
// when the student has no grade records that month.
func (r MonthlyReportRow) AverageGrade() int {
	if r.GradeCount <= 0 {
		return 0
	}
	return int(math.Round(float64(r.GradeSum) / float64(r.GradeCount)))
}

// CleanupResult reports how many rows a daily cleanup removed.
type CleanupResult struct {
	DeletedGrades   int64 `json:"deleted_grades_count"`
	DeletedStatuses int64 `json:"deleted_status_count"`
	DeletedJournals int64 `json:"deleted_journal_count"`
}
