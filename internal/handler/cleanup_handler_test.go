package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/internal/service"
)

type cleanupServiceStub struct {
	req service.CleanupRequest
}

func (s *cleanupServiceStub) Cleanup(_ context.Context, req service.CleanupRequest) (*models.CleanupResult, error) {
	s.req = req
	return &models.CleanupResult{DeletedGrades: 3, DeletedStatuses: 2, DeletedJournals: 1}, nil
}

func TestCleanupHandlerReportsCounts(t *testing.T) {
	stub := &cleanupServiceStub{}
	h := NewCleanupHandler(stub)

	c, w := newGinContext(http.MethodDelete, "/api/cleanup-daily-data", []byte(`{"date":"2024-03-05","classId":2}`))
	h.Cleanup(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.CleanupRequest{Date: "2024-03-05", ClassID: 2}, stub.req)
	body := w.Body.String()
	assert.Contains(t, body, `"deleted_grades_count":3`)
	assert.Contains(t, body, `"deleted_status_count":2`)
	assert.Contains(t, body, `"deleted_journal_count":1`)
}

func TestCleanupHandlerRejectsEmptyBody(t *testing.T) {
	h := NewCleanupHandler(&cleanupServiceStub{})

	c, w := newGinContext(http.MethodDelete, "/api/cleanup-daily-data", nil)
	h.Cleanup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
