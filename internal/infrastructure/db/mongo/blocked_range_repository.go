package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

const collectionBlockedRanges = "blocked_ranges"

type BlockedRangeRepository struct {
	col *mongo.Collection
}

func NewBlockedRangeRepository(db *mongo.Database) *BlockedRangeRepository {
	return &BlockedRangeRepository{col: db.Collection(collectionBlockedRanges)}
}

type blockedRangeDoc struct {
	ID         string    `bson:"_id"`
	PropertyID string    `bson:"property_id"`
	From       time.Time `bson:"from"`
	To         time.Time `bson:"to"`
	Note       string    `bson:"note,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (d blockedRangeDoc) toDomain() *domain.BlockedRange {
	return &domain.BlockedRange{
		ID:         d.ID,
		PropertyID: d.PropertyID,
		Range:      domain.DateRange{From: d.From, To: d.To},
		Note:       d.Note,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *BlockedRangeRepository) Create(ctx context.Context, br *domain.BlockedRange) (*domain.BlockedRange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := blockedRangeDoc{
		ID:         uuid.NewString(),
		PropertyID: br.PropertyID,
		From:       br.Range.From,
		To:         br.Range.To,
		Note:       br.Note,
		CreatedAt:  br.CreatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert blocked range: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the range scoped by property, so one host cannot delete
// another host's blackout through a guessed id.
func (r *BlockedRangeRepository) Delete(ctx context.Context, propertyID, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": blockID, "property_id": propertyID})
	if err != nil {
		return fmt.Errorf("delete blocked range: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

func (r *BlockedRangeRepository) ListByProperty(ctx context.Context, propertyID string) ([]*domain.BlockedRange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "from", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list blocked ranges: %w", err)
	}
	defer cur.Close(ctx)

	out := []*domain.BlockedRange{}
	for cur.Next(ctx) {
		var doc blockedRangeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode blocked range: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocked ranges: %w", err)
	}
	return out, nil
}

func (r *BlockedRangeRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"property_id": propertyID}); err != nil {
		return fmt.Errorf("delete blocked ranges: %w", err)
	}
	return nil
}

// EnsureIndexes creates the property lookup index.
func (r *BlockedRangeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "from", Value: 1}},
	})
	return err
}
