package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResponseMetaCarriesCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var captured map[string]interface{}
	r := gin.New()
	r.Use(ResponseMeta())
	r.GET("/api/history-summary", func(c *gin.Context) {
		SetCacheHit(c, true)
		captured = Meta(c)
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/history-summary", nil))

	assert.Equal(t, true, captured[cacheHitKey])
	assert.Contains(t, captured, elapsedKey)
}

func TestSetCacheHitWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, Meta(c))

	SetCacheHit(c, false)
	assert.Equal(t, false, Meta(c)[cacheHitKey])
}
