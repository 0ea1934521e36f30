package ports

import (
	"context"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

// ComplaintRepository defines persistence operations for complaints.
//
// Update and Delete are scoped by owner: implementations must match on both
// the complaint id and the owner id, and return domain.ErrComplaintNotFound
// when nothing matched.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	FindByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Complaint, error)
	Update(ctx context.Context, c *domain.Complaint) error
	Delete(ctx context.Context, id, ownerID int64) error
}

// Store bundles the repositories of one persistence driver together with its
// lifecycle hooks.
type Store interface {
	Users() UserRepository
	Complaints() ComplaintRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
