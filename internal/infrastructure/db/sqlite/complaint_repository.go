package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
	"github.com/complaintdesk/complaints-api/internal/infrastructure/db/dbx"
)

const complaintColumns = `id, title, description, created_at, owner_id`

type ComplaintRepository struct {
	db dbx.DBTX
}

func NewComplaintRepository(db dbx.DBTX) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO complaints (title, description, created_at, owner_id) VALUES (?, ?, ?, ?)`,
		c.Title, c.Description, c.CreatedAt.UTC(), c.OwnerID)
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	c.ID = id
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id = ?`, id)

	c, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	return c, nil
}

func (r *ComplaintRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Complaint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var out []*domain.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("list complaints: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return out, nil
}

func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE complaints SET title = ?, description = ? WHERE id = ? AND owner_id = ?`,
		c.Title, c.Description, c.ID, c.OwnerID)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	return requireAffected(res, "update complaint")
}

func (r *ComplaintRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM complaints WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	return requireAffected(res, "delete complaint")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	var c domain.Complaint
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.OwnerID); err != nil {
		return nil, err
	}
	return &c, nil
}

func requireAffected(res sql.Result, op string) error {
	ok, err := dbx.AffectedAny(res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return domain.ErrComplaintNotFound
	}
	return nil
}
