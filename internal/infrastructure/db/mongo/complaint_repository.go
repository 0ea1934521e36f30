package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/complaintdesk/complaints-api/internal/core/domain"
)

type ComplaintRepository struct {
	col *mongo.Collection
	seq *sequence
}

func newComplaintRepository(db *mongo.Database, seq *sequence) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection(collectionComplaints), seq: seq}
}

type mongoComplaint struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
	OwnerID     int64     `bson:"owner_id"`
}

func (m mongoComplaint) toDomain() *domain.Complaint {
	return &domain.Complaint{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt.UTC(),
		OwnerID:     m.OwnerID,
	}
}

// Create inserts a new complaint document.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionComplaints)
	if err != nil {
		return err
	}

	doc := mongoComplaint{
		ID:          id,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.UTC(),
		OwnerID:     c.OwnerID,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}

	c.ID = id
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoComplaint
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("find complaint: %w", err)
	}
	return m.toDomain(), nil
}

// ListByOwner returns the owner's complaints sorted by id.
func (r *ComplaintRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoComplaint
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode complaints: %w", err)
	}

	out := make([]*domain.Complaint, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": c.ID, "owner_id": c.OwnerID},
		bson.M{"$set": bson.M{"title": c.Title, "description": c.Description}},
	)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete complaint: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}
