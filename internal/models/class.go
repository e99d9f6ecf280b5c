package models

// Class is a homeroom group. Deleting a class cascades to its students,
// their dated records, its journals and its behavior notes.
type Class struct {
	ID              int64   `db:"id" json:"id"`
	ClassName       string  `db:"class_name" json:"class_name"`
	HomeroomTeacher *string `db:"homeroom_teacher" json:"homeroom_teacher"`
}
