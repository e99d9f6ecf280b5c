package models

// HistoryRow is one (class, month) pair of the coverage index. Month is nil
// for classes that have no dated data at all.
type HistoryRow struct {
	ClassID    int64   `db:"class_id"`
	ClassName  string  `db:"class_name"`
	Month      *string `db:"month"`
	HasJournal bool    `db:"has_journal"`
	HasGrades  bool    `db:"has_grades"`
}

// HistoryMonth flags what kind of data exists for a class in a month.
type HistoryMonth struct {
	Month      string `json:"month"`
	HasJournal bool   `json:"has_journal"`
	HasGrades  bool   `json:"has_grades"`
}

// ClassHistory lists the months, newest first, for which a class has data.
type ClassHistory struct {
	ClassID   int64          `json:"class_id"`
	ClassName string         `json:"class_name"`
	Months    []HistoryMonth `json:"months"`
}
