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

type behaviorServiceStub struct {
	query   service.BehaviorListQuery
	classID int64
	req     service.BehaviorNoteRequest
	err     error
}

func (s *behaviorServiceStub) List(_ context.Context, query service.BehaviorListQuery) ([]models.BehaviorNoteDetail, *models.Pagination, error) {
	s.query = query
	return []models.BehaviorNoteDetail{}, models.NewPagination(2, 10, 25), s.err
}

func (s *behaviorServiceStub) Stats(_ context.Context, classID int64) ([]models.BehaviorCategoryStat, error) {
	s.classID = classID
	return []models.BehaviorCategoryStat{{Category: "Disiplin", Total: 3}}, s.err
}

func (s *behaviorServiceStub) Get(_ context.Context, id int64) (*models.BehaviorNoteDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BehaviorNoteDetail{BehaviorNote: models.BehaviorNote{ID: id}}, nil
}

func (s *behaviorServiceStub) Create(_ context.Context, req service.BehaviorNoteRequest) (*models.BehaviorNote, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BehaviorNote{ID: 1, StudentID: req.StudentID, ClassID: 4}, nil
}

func (s *behaviorServiceStub) Update(_ context.Context, id int64, req service.BehaviorNoteRequest) (*models.BehaviorNote, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BehaviorNote{ID: id, StudentID: req.StudentID}, nil
}

func (s *behaviorServiceStub) Delete(context.Context, int64) error {
	return s.err
}

func TestBehaviorHandlerListReturnsPagination(t *testing.T) {
	stub := &behaviorServiceStub{}
	h := NewBehaviorHandler(stub)

	c, w := newGinContext(http.MethodGet, "/api/behavior-notes?page=2&limit=10&classId=4&category=Disiplin", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.BehaviorListQuery{Page: 2, Limit: 10, ClassID: 4, Category: "Disiplin"}, stub.query)
	env := decodeEnvelope(t, w)
	assert.Equal(t, 3.0, env.Pagination["total_pages"])
	assert.Equal(t, 25.0, env.Pagination["total_count"])
}

func TestBehaviorHandlerStatsOptionalClass(t *testing.T) {
	stub := &behaviorServiceStub{}
	h := NewBehaviorHandler(stub)

	c, w := newGinContext(http.MethodGet, "/api/behavior-notes/stats", nil)
	h.Stats(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, stub.classID)

	c, w = newGinContext(http.MethodGet, "/api/behavior-notes/stats?classId=abc", nil)
	h.Stats(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBehaviorHandlerCreateIgnoresClientClass(t *testing.T) {
	stub := &behaviorServiceStub{}
	h := NewBehaviorHandler(stub)

	body := []byte(`{"studentId":9,"classId":99,"noteDate":"2024-03-05T08:00","category":"Disiplin","noteText":"Terlambat"}`)
	c, w := newGinContext(http.MethodPost, "/api/behavior-notes", body)
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(9), stub.req.StudentID)
	assert.Contains(t, w.Body.String(), `"class_id":4`)
}

func TestBehaviorHandlerGetNotFound(t *testing.T) {
	h := NewBehaviorHandler(&behaviorServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "Catatan perilaku tidak ditemukan")})

	c, w := newGinContext(http.MethodGet, "/api/behavior-notes/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBehaviorHandlerDelete(t *testing.T) {
	h := NewBehaviorHandler(&behaviorServiceStub{})

	c, w := newGinContext(http.MethodDelete, "/api/behavior-notes/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
