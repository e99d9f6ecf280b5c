package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

// ContextSessionKey is the gin context key storing the admin session claims.
const ContextSessionKey = "session"

// LoginRedirect is where unauthenticated visitors are sent.
const LoginRedirect = "/"

// SessionParser validates a session token.
type SessionParser interface {
	ParseSession(token string) (*models.SessionClaims, error)
}

// Session gates pages and data routes behind the signed session cookie.
// A missing or invalid cookie redirects to the login page.
func Session(parser SessionParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginRedirect)
			c.Abort()
			return
		}

		claims, err := parser.ParseSession(token)
		if err != nil {
			c.Redirect(http.StatusFound, LoginRedirect)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}

// SessionFromContext returns the claims attached by Session, if any.
func SessionFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
