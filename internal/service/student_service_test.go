package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type studentRepoStub struct {
	imported []models.StudentImport
	classID  int64
	created  *models.Student
}

func (s *studentRepoStub) FindByID(context.Context, int64) (*models.Student, error) {
	return nil, sql.ErrNoRows
}

func (s *studentRepoStub) Create(_ context.Context, student *models.Student) error {
	student.ID = 10
	s.created = student
	return nil
}

func (s *studentRepoStub) Update(context.Context, *models.Student) error {
	return fmt.Errorf("update student: %w", sql.ErrNoRows)
}

func (s *studentRepoStub) Delete(context.Context, int64) error { return nil }

func (s *studentRepoStub) BulkUpsert(_ context.Context, classID int64, students []models.StudentImport) error {
	s.classID = classID
	s.imported = students
	return nil
}

func TestStudentServiceBulkImport(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil, nil)

	count, err := svc.BulkImport(context.Background(), BulkImportRequest{ClassID: 2, Students: []models.StudentImport{
		{NIPD: " 1001 ", Name: "Ani", Gender: "p"},
		{NIPD: "1002", Name: "Budi"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(2), repo.classID)
	assert.Equal(t, "1001", repo.imported[0].NIPD)
	assert.Equal(t, "P", repo.imported[0].Gender)
}

func TestStudentServiceBulkImportRejectsEmpty(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil, nil)

	_, err := svc.BulkImport(context.Background(), BulkImportRequest{ClassID: 2})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.BulkImport(context.Background(), BulkImportRequest{ClassID: 2, Students: []models.StudentImport{{NIPD: "1"}}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Nil(t, repo.imported)
}

func TestStudentServiceCreateAndUpdate(t *testing.T) {
	repo := &studentRepoStub{}
	svc := NewStudentService(repo, nil, nil, nil)

	student, err := svc.Create(context.Background(), StudentRequest{NIPD: "1001", FullName: "Ani", Gender: "p", ClassID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(10), student.ID)
	assert.Equal(t, "P", *student.Gender)
	assert.Equal(t, int64(2), *student.ClassID)

	_, err = svc.Update(context.Background(), 404, StudentRequest{NIPD: "1001", FullName: "Ani", ClassID: 2})
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)

	_, err = svc.Get(context.Background(), 404)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}
