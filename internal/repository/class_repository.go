package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

// ClassRepository manages persistence for classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a new class repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, class_name, homeroom_teacher FROM classes ORDER BY class_name`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class record by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	const query = `SELECT id, class_name, homeroom_teacher FROM classes WHERE id = $1`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create persists a class record and fills in its generated ID.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (class_name, homeroom_teacher) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, class.ClassName, class.HomeroomTeacher).Scan(&class.ID); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update modifies a class record. It returns sql.ErrNoRows when the class does not exist.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	const query = `UPDATE classes SET class_name = $1, homeroom_teacher = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, class.ClassName, class.HomeroomTeacher, class.ID)
	if err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return expectAffected(res, "update class")
}

// Delete removes a class and, through cascades, everything attached to it.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return expectAffected(res, "delete class")
}

func expectAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}
