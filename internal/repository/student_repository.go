package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

const upsertStudentQuery = `INSERT INTO students (nipd, full_name, gender, class_id) VALUES ($1, $2, $3, $4)
ON CONFLICT (nipd) DO UPDATE SET full_name = EXCLUDED.full_name, gender = EXCLUDED.gender, class_id = EXCLUDED.class_id`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, nipd, full_name, gender, class_id FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a single student and fills in its generated ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (nipd, full_name, gender, class_id) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, student.NIPD, student.FullName, student.Gender, student.ClassID).Scan(&student.ID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies a student record. It returns sql.ErrNoRows when the student does not exist.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET nipd = $1, full_name = $2, gender = $3, class_id = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, student.NIPD, student.FullName, student.Gender, student.ClassID, student.ID)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return expectAffected(res, "update student")
}

// Delete removes a student and its dated records.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res, "delete student")
}

// BulkUpsert imports a roster into a class in one transaction. Students are
// matched by NIPD, so re-importing moves an existing student to the class.
func (r *StudentRepository) BulkUpsert(ctx context.Context, classID int64, students []models.StudentImport) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, student := range students {
		var gender *string
		if student.Gender != "" {
			g := student.Gender
			gender = &g
		}
		if _, err = tx.ExecContext(ctx, upsertStudentQuery, student.NIPD, student.Name, gender, classID); err != nil {
			return fmt.Errorf("upsert student %s: %w", student.NIPD, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk import: %w", err)
	}
	return nil
}
