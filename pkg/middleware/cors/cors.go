package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowHeaders  = "Content-Type, X-Requested-With, X-Request-ID"
	allowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
	exposeHeaders = "Content-Disposition, X-Request-ID"
)

// policy decides which browser origins may call the API with the session cookie.
type policy struct {
	any     bool
	origins map[string]struct{}
}

func newPolicy(allowedOrigins []string) policy {
	p := policy{any: len(allowedOrigins) == 0, origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		p.origins[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return p
}

func (p policy) allows(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.origins[strings.TrimRight(origin, "/")]
	return ok
}

// New returns a CORS middleware. An empty list allows every origin. Allowed
// origins are echoed back rather than "*" because credentialed requests
// reject the wildcard.
func New(allowedOrigins []string) gin.HandlerFunc {
	p := newPolicy(allowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin != "" && p.allows(origin):
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
		case origin == "" && p.any:
			header.Set("Access-Control-Allow-Origin", "*")
		}
		header.Set("Access-Control-Expose-Headers", exposeHeaders)

		if c.Request.Method == http.MethodOptions {
			header.Set("Access-Control-Allow-Headers", allowHeaders)
			header.Set("Access-Control-Allow-Methods", allowMethods)
			header.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
