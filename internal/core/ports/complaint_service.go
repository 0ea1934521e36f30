package ports

import "context"

// CreateComplaintInput carries the data for a new complaint. IdempotencyKey is
// optional.
type CreateComplaintInput struct {
	OwnerID        int64
	Title          string
	Description    string
	IdempotencyKey string
}

// CreateComplaintResult is returned after a create. Replayed is true when the
// idempotency key matched an earlier request and nothing new was stored.
type CreateComplaintResult struct {
	ID       int64
	Replayed bool
}

// UpdateComplaintInput is a partial update; nil fields are left untouched.
// MalformedBody marks a request body that could not be decoded; it is
// reported only once the complaint is known to exist.
type UpdateComplaintInput struct {
	ID            int64
	CallerID      int64
	Title         *string
	Description   *string
	MalformedBody bool
}

// ComplaintSummary is the projection returned by List.
type ComplaintSummary struct {
	ID          int64
	Title       string
	Description string
}

// ComplaintService defines use-case operations for complaints.
type ComplaintService interface {
	Create(ctx context.Context, input CreateComplaintInput) (*CreateComplaintResult, error)
	List(ctx context.Context, ownerID int64) ([]ComplaintSummary, error)
	Update(ctx context.Context, input UpdateComplaintInput) error
	Delete(ctx context.Context, id, callerID int64) error
}

// IdempotencyStore remembers which complaint a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, ownerID int64, key string) (int64, bool, error)
	Remember(ctx context.Context, ownerID int64, key string, complaintID int64) error
	Forget(ctx context.Context, ownerID int64, key string) error
}
