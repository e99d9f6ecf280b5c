package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	"github.com/noah-isme/jurnal-kelas-api/pkg/response"
)

type sessionIssuer interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
}

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name   string
	Secure bool
}

// AuthHandler signs the administrator in and out.
type AuthHandler struct {
	service sessionIssuer
	cookie  CookieOptions
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc sessionIssuer, cookie CookieOptions) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "token"
	}
	return &AuthHandler{service: svc, cookie: cookie}
}

// Login godoc
// @Summary Sign in as administrator
// @Description Sets an httpOnly session cookie on success
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, session.Token, maxAge, "/", "", h.cookie.Secure, true)
	response.JSON(c, http.StatusOK, gin.H{"message": "Login berhasil", "expires_at": session.ExpiresAt}, nil)
}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Message(c, "Logout berhasil")
}
