package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type classServiceStub struct {
	classes   []models.Class
	hit       bool
	err       error
	updatedID int64
	deletedID int64
}

func (s *classServiceStub) List(context.Context) ([]models.Class, bool, error) {
	return s.classes, s.hit, s.err
}

func (s *classServiceStub) Create(_ context.Context, req service.ClassRequest) (*models.Class, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Class{ID: 7, ClassName: req.ClassName}, nil
}

func (s *classServiceStub) Update(_ context.Context, id int64, req service.ClassRequest) (*models.Class, error) {
	s.updatedID = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Class{ID: id, ClassName: req.ClassName}, nil
}

func (s *classServiceStub) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func TestClassHandlerListReportsCacheHit(t *testing.T) {
	stub := &classServiceStub{classes: []models.Class{{ID: 1, ClassName: "X IPA 1"}}, hit: true}
	h := NewClassHandler(stub)

	c, w := newGinContext(http.MethodGet, "/api/classes", nil)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
	var classes []models.Class
	require.NoError(t, json.Unmarshal(env.Data, &classes))
	require.Len(t, classes, 1)
	assert.Equal(t, "X IPA 1", classes[0].ClassName)
}

func TestClassHandlerCreate(t *testing.T) {
	h := NewClassHandler(&classServiceStub{})

	c, w := newGinContext(http.MethodPost, "/api/classes", mustJSON(t, service.ClassRequest{ClassName: "XI IPS 2"}))
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestClassHandlerUpdateParsesID(t *testing.T) {
	stub := &classServiceStub{}
	h := NewClassHandler(stub)

	c, w := newGinContext(http.MethodPut, "/api/classes/4", mustJSON(t, service.ClassRequest{ClassName: "XII"}))
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.Update(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), stub.updatedID)
}

func TestClassHandlerRejectsBadID(t *testing.T) {
	h := NewClassHandler(&classServiceStub{})

	c, w := newGinContext(http.MethodDelete, "/api/classes/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error.Code)
}

func TestClassHandlerDeleteNotFound(t *testing.T) {
	stub := &classServiceStub{err: appErrors.Clone(appErrors.ErrNotFound, "Kelas tidak ditemukan")}
	h := NewClassHandler(stub)

	c, w := newGinContext(http.MethodDelete, "/api/classes/9", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(9), stub.deletedID)
}
