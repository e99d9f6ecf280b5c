package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

type sessionIssuerStub struct {
	session *models.Session
	err     error
	got     models.LoginRequest
}

func (s *sessionIssuerStub) Login(_ context.Context, req models.LoginRequest) (*models.Session, error) {
	s.got = req
	return s.session, s.err
}

func TestAuthHandlerLoginSetsCookie(t *testing.T) {
	stub := &sessionIssuerStub{session: &models.Session{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)}}
	h := NewAuthHandler(stub, CookieOptions{Name: "token"})

	c, w := newGinContext(http.MethodPost, "/api/login", mustJSON(t, models.LoginRequest{Username: "admin", Password: "rahasia"}))
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", stub.got.Username)
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token=signed")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Max-Age=")
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	stub := &sessionIssuerStub{err: appErrors.ErrInvalidCredentials}
	h := NewAuthHandler(stub, CookieOptions{})

	c, w := newGinContext(http.MethodPost, "/api/login", mustJSON(t, models.LoginRequest{Username: "admin", Password: "salah"}))
	h.Login(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Username atau password salah.", env.Error.Message)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestAuthHandlerLoginBadPayload(t *testing.T) {
	h := NewAuthHandler(&sessionIssuerStub{}, CookieOptions{})

	c, w := newGinContext(http.MethodPost, "/api/login", []byte("{"))
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(&sessionIssuerStub{}, CookieOptions{Name: "token"})

	c, w := newGinContext(http.MethodPost, "/api/logout", nil)
	h.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "token=;")
	assert.Contains(t, cookie, "Max-Age=0")
}
