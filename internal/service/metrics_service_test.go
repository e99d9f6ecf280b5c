package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/classes", http.StatusOK, 10*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordReport("monthly", "xlsx")
	m.RecordCleanup(3, 2, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/api/classes", "200")))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.cacheHitRatio))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportsTotal.WithLabelValues("monthly", "xlsx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cleanupRows.WithLabelValues("student_status")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "reports_generated_total"))
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", 200, time.Millisecond)
	m.RecordReport("monthly", "pdf")
	m.RecordCleanup(1, 1, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
