package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	cacheHitKey     = "cache_hit"
	elapsedKey      = "processing_time_ms"
)

// ResponseMeta prepares the per-request meta map merged into JSON envelopes.
func ResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
		meta := metaFor(c)
		if _, exists := meta[elapsedKey]; !exists {
			meta[elapsedKey] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit records whether the response body came from the cache.
func SetCacheHit(c *gin.Context, hit bool) {
	metaFor(c)[cacheHitKey] = hit
}

// Meta returns the meta map of the current request, or nil when none was set.
func Meta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if value, exists := c.Get(responseMetaKey); exists {
		if typed, ok := value.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func metaFor(c *gin.Context) map[string]interface{} {
	if meta := Meta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	if c != nil {
		c.Set(responseMetaKey, meta)
	}
	return meta
}
