package ports

import (
	"context"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	// Create inserts the user and sets user.ID. A duplicate name yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) error
}
