package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db/dbx"
)

type ComplaintRepository struct {
	db dbx.DBTX
}

func NewComplaintRepository(db dbx.DBTX) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	query :=
		`INSERT INTO complaints (title, description, created_at, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, c.Title, c.Description, c.CreatedAt, c.OwnerID).Scan(&c.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	query :=
		`SELECT id, title, description, created_at, owner_id FROM complaints
		 WHERE id = $1`

	c := &domain.Complaint{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *ComplaintRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Complaint, error) {
	query :=
		`SELECT id, title, description, created_at, owner_id FROM complaints
		 WHERE owner_id = $1
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*domain.Complaint
	for rows.Next() {
		c := &domain.Complaint{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	query :=
		`UPDATE complaints SET title = $1, description = $2
		 WHERE id = $3 AND owner_id = $4`

	res, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.ID, c.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *ComplaintRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query :=
		`DELETE FROM complaints
		 WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	ok, err := dbx.AffectedAny(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !ok {
		return domain.ErrComplaintNotFound
	}
	return nil
}
