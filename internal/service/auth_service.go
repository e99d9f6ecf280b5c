package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
	appErrors "github.com/noah-isme/jurnal-kelas-api/pkg/errors"
)

const sessionSubject = "admin"

// AuthConfig defines the single administrator credential and session signing.
type AuthConfig struct {
	Username     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
	Issuer       string
}

// AuthService checks the administrator credential and issues signed sessions.
type AuthService struct {
	config    AuthConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(config AuthConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.TTL <= 0 {
		config.TTL = 7 * 24 * time.Hour
	}
	if config.PasswordHash == "" {
		logger.Warn("admin password hash is empty, every login will be rejected")
	}
	return &AuthService{config: config, validator: validate, logger: logger, now: time.Now}
}

// HashPassword derives the bcrypt hash stored for the admin password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credential and returns a signed session.
func (s *AuthService) Login(_ context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "Username dan password wajib diisi")
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		s.logger.Info("admin login rejected", zap.String("username", req.Username))
		return nil, appErrors.ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.config.TTL)
	claims := models.SessionClaims{
		Username: s.config.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionSubject,
			Issuer:    s.config.Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		s.logger.Error("sign session failed", zap.Error(err))
		return nil, appErrors.Internal(err, "Gagal membuat sesi")
	}
	return &models.Session{Token: token, ExpiresAt: expires}, nil
}

// ParseSession validates a session token and returns its claims.
func (s *AuthService) ParseSession(token string) (*models.SessionClaims, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}
	claims := &models.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithSubject(sessionSubject))
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid session token")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message)
	}
	return claims, nil
}

// TTL returns how long issued sessions stay valid.
func (s *AuthService) TTL() time.Duration {
	return s.config.TTL
}
