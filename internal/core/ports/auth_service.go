package ports

import (
	"context"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

// AuthService covers login and per-request token authentication.
type AuthService interface {
	Login(ctx context.Context, name, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs and verifies identity tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}
