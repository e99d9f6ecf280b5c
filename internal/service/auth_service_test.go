package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(AuthConfig{Username: "admin", PasswordHash: string(hash), Secret: "test-secret", TTL: time.Hour}, nil, nil)
}

func TestAuthServiceLoginAndParse(t *testing.T) {
	svc := newTestAuthService(t)

	session, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	claims, err := svc.ParseSession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "salah"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, "Username atau password salah.", appErrors.FromError(err).Message)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "guru", Password: "rahasia"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "admin"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceParseSessionRejects(t *testing.T) {
	svc := newTestAuthService(t)
	session, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "rahasia"})
	require.NoError(t, err)

	_, err = svc.ParseSession("")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.ParseSession(session.Token + "x")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	other := NewAuthService(AuthConfig{Username: "admin", Secret: "another-secret"}, nil, nil)
	_, err = other.ParseSession(session.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ParseSession(session.Token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("rahasia")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("rahasia")))
}
