package models

// Student is a roster entry. Time-varying state lives in the dated
// attendance and grade tables, never on the student row.
type Student struct {
	ID       int64   `db:"id" json:"id"`
	NIPD     string  `db:"nipd" json:"nipd"`
	FullName string  `db:"full_name" json:"full_name"`
	Gender   *string `db:"gender" json:"gender"`
	ClassID  *int64  `db:"class_id" json:"class_id"`
}

// StudentImport is one entry of a bulk roster import.
type StudentImport struct {
	NIPD   string `json:"nipd" validate:"required,max=20"`
	Name   string `json:"name" validate:"required,max=100"`
	Gender string `json:"gender" validate:"omitempty,len=1"`
}
