package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/core/ports"
)

type ComplaintService struct {
	repo   ports.ComplaintRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewComplaintService returns a ComplaintService. idem may be nil, in which
// case Idempotency-Key headers are ignored.
func NewComplaintService(repo ports.ComplaintRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *ComplaintService {
	return &ComplaintService{repo: repo, idem: idem, logger: logger, now: time.Now}
}

// Create stores a new complaint owned by input.OwnerID. When an idempotency key
// is supplied and was already used by the same owner, the earlier complaint id
// is returned without side effects, provided that complaint still exists.
func (s *ComplaintService) Create(ctx context.Context, input ports.CreateComplaintInput) (*ports.CreateComplaintResult, error) {
	if err := domain.ValidateTitle(input.Title); err != nil {
		return nil, err
	}

	useIdem := s.idem != nil && input.IdempotencyKey != ""
	if useIdem {
		id, found, err := s.idem.Lookup(ctx, input.OwnerID, input.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if found {
			_, err := s.repo.FindByID(ctx, id)
			switch {
			case err == nil:
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("complaint_id", id).Msg("idempotent replay")
				return &ports.CreateComplaintResult{ID: id, Replayed: true}, nil
			case errors.Is(err, domain.ErrComplaintNotFound):
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("complaint_id", id).Msg("replayed complaint was deleted, creating a new one")
				if err := s.idem.Forget(ctx, input.OwnerID, input.IdempotencyKey); err != nil {
					s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to drop stale idempotency key")
				}
			default:
				return nil, fmt.Errorf("check replayed complaint: %w", err)
			}
		}
	}

	c := &domain.Complaint{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", input.OwnerID).Msg("failed to create complaint")
		return nil, err
	}

	if useIdem {
		if err := s.idem.Remember(ctx, input.OwnerID, input.IdempotencyKey, c.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Int64("complaint_id", c.ID).Int64("owner_id", c.OwnerID).Msg("complaint created")
	return &ports.CreateComplaintResult{ID: c.ID}, nil
}

// List returns the owner's complaints in no particular order.
func (s *ComplaintService) List(ctx context.Context, ownerID int64) ([]ports.ComplaintSummary, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	out := make([]ports.ComplaintSummary, 0, len(items))
	for _, c := range items {
		out = append(out, ports.ComplaintSummary{ID: c.ID, Title: c.Title, Description: c.Description})
	}
	return out, nil
}

// Update applies a partial update. Checks run in a fixed order: existence,
// then a decodable body with at least one field, then ownership.
func (s *ComplaintService) Update(ctx context.Context, input ports.UpdateComplaintInput) error {
	c, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return err
	}

	if input.MalformedBody {
		return domain.ErrInvalidPayload
	}
	if input.Title == nil && input.Description == nil {
		return domain.ErrNoFieldsToUpdate
	}

	if !c.OwnedBy(input.CallerID) {
		s.logger.Warn().Int64("complaint_id", c.ID).Int64("caller_id", input.CallerID).Msg("update denied")
		return domain.ErrUpdateForbidden
	}

	if input.Title != nil {
		if err := domain.ValidateTitle(*input.Title); err != nil {
			return err
		}
		c.Title = *input.Title
	}
	if input.Description != nil {
		c.Description = *input.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	s.logger.Info().Int64("complaint_id", c.ID).Msg("complaint updated")
	return nil
}

// Delete removes a complaint owned by callerID.
func (s *ComplaintService) Delete(ctx context.Context, id, callerID int64) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !c.OwnedBy(callerID) {
		s.logger.Warn().Int64("complaint_id", c.ID).Int64("caller_id", callerID).Msg("delete denied")
		return domain.ErrDeleteForbidden
	}

	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return err
	}

	s.logger.Info().Int64("complaint_id", id).Msg("complaint deleted")
	return nil
}
