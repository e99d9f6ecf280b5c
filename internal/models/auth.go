package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds the administrator credentials.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
