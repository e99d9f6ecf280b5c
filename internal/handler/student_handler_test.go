package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type studentServiceStub struct {
	bulk service.BulkImportRequest
	err  error
}

func (s *studentServiceStub) Create(_ context.Context, req service.StudentRequest) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Student{ID: 1, NIPD: req.NIPD, FullName: req.FullName}, nil
}

func (s *studentServiceStub) Update(_ context.Context, id int64, req service.StudentRequest) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Student{ID: id, NIPD: req.NIPD}, nil
}

func (s *studentServiceStub) Delete(context.Context, int64) error {
	return s.err
}

func (s *studentServiceStub) BulkImport(_ context.Context, req service.BulkImportRequest) (int, error) {
	s.bulk = req
	return len(req.Students), s.err
}

func TestStudentHandlerBulk(t *testing.T) {
	stub := &studentServiceStub{}
	h := NewStudentHandler(stub)

	body := []byte(`{"classId":3,"students":[{"nipd":"1001","name":"Ani","gender":"P"},{"nipd":"1002","name":"Budi","gender":"L"}]}`)
	c, w := newGinContext(http.MethodPost, "/api/students/bulk", body)
	h.Bulk(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), stub.bulk.ClassID)
	assert.Len(t, stub.bulk.Students, 2)
	assert.Contains(t, w.Body.String(), `"imported":2`)
}

func TestStudentHandlerCreateConflict(t *testing.T) {
	h := NewStudentHandler(&studentServiceStub{err: appErrors.Clone(appErrors.ErrConflict, "NIPD sudah digunakan")})

	c, w := newGinContext(http.MethodPost, "/api/students", []byte(`{"nipd":"1001","fullName":"Ani","classId":3}`))
	h.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NIPD sudah digunakan", decodeEnvelope(t, w).Error.Message)
}

func TestStudentHandlerDelete(t *testing.T) {
	h := NewStudentHandler(&studentServiceStub{})

	c, w := newGinContext(http.MethodDelete, "/api/students/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
