package domain

import "errors"

const MaxUserNameLength = 50

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrInvalidCredentials is returned for both an unknown name and a wrong
	// password so callers cannot tell which one was wrong.
	ErrInvalidCredentials = errors.New("authentication failed: incorrect username or password")
)

// Token verification failures surfaced by the auth middleware.
var (
	ErrTokenMissing = errors.New("access token required")
	ErrTokenExpired = errors.New("token expired, please log in again")
	ErrTokenInvalid = errors.New("invalid token")
)

// User models an account that owns complaints.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
