package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/api/classes", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestPreflightShortCircuits(t *testing.T) {
	r := newEngine([]string{"http://admin.sekolah.test/"})
	req := httptest.NewRequest(http.MethodOptions, "/api/classes", nil)
	req.Header.Set("Origin", "http://admin.sekolah.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://admin.sekolah.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestUnknownOriginNotEchoed(t *testing.T) {
	r := newEngine([]string{"http://admin.sekolah.test"})
	req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
	req.Header.Set("Origin", "http://evil.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
