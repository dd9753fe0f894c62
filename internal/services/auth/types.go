package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrAccountNotFound = errors.New("account not found")
	ErrBadCredential   = errors.New("bad credential")
	ErrPhoneTaken      = errors.New("phone already registered")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrRefreshInvalid  = errors.New("refresh token invalid")
	ErrHashCorrupt     = errors.New("stored password hash corrupt")
)

// Account mirrors a document in the Cred collection. PasswordHash never
// leaves this package.
type Account struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string
	Role         string
}

type AccessClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type RefreshClaims struct {
	UserID    string
	Role      string
	JTI       string
	ExpiresAt time.Time
}

type AuthResult struct {
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
	Name          string
	Phone         string
	Role          string
}
