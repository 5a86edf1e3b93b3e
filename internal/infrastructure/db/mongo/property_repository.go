package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

const collectionProperties = "properties"

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection(collectionProperties)}
}

type propertyDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Slug          string             `bson:"slug"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Address       string             `bson:"address"`
	City          string             `bson:"city"`
	Province      string             `bson:"province"`
	ZipCode       string             `bson:"zip_code"`
	PricePerNight float64            `bson:"price_per_night"`
	MaxGuests     int                `bson:"max_guests"`
	Bedrooms      int                `bson:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms"`
	Images        []string           `bson:"images"`
	Amenities     []string           `bson:"amenities"`
	WhatsApp      string             `bson:"whatsapp,omitempty"`
	OwnerID       string             `bson:"owner_id"`
	Active        bool               `bson:"active"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func toPropertyDoc(p *domain.Property) propertyDoc {
	return propertyDoc{
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		Address:       p.Address,
		City:          p.City,
		Province:      p.Province,
		ZipCode:       p.ZipCode,
		PricePerNight: p.PricePerNight,
		MaxGuests:     p.MaxGuests,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Images:        p.Images,
		Amenities:     p.Amenities,
		WhatsApp:      p.WhatsApp,
		OwnerID:       p.OwnerID,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d propertyDoc) toDomain() *domain.Property {
	return &domain.Property{
		ID:            d.ID.Hex(),
		Slug:          d.Slug,
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.Address,
		City:          d.City,
		Province:      d.Province,
		ZipCode:       d.ZipCode,
		PricePerNight: d.PricePerNight,
		MaxGuests:     d.MaxGuests,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Images:        d.Images,
		Amenities:     d.Amenities,
		WhatsApp:      d.WhatsApp,
		OwnerID:       d.OwnerID,
		Active:        d.Active,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toPropertyDoc(p))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert property: %w", err)
	}

	created := *p
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) FindBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc propertyDoc
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property by slug: %w", err)
	}
	return doc.toDomain(), nil
}

// Update rewrites the mutable listing fields. owner_id and created_at stay
// untouched — ownership is immutable after creation.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"slug":            p.Slug,
		"title":           p.Title,
		"description":     p.Description,
		"address":         p.Address,
		"city":            p.City,
		"province":        p.Province,
		"zip_code":        p.ZipCode,
		"price_per_night": p.PricePerNight,
		"max_guests":      p.MaxGuests,
		"bedrooms":        p.Bedrooms,
		"bathrooms":       p.Bathrooms,
		"images":          p.Images,
		"amenities":       p.Amenities,
		"whatsapp":        p.WhatsApp,
		"active":          p.Active,
		"updated_at":      p.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) ListActive(ctx context.Context) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return decodeProperties(ctx, cur)
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list properties by owner: %w", err)
	}
	return decodeProperties(ctx, cur)
}

func decodeProperties(ctx context.Context, cur *mongo.Cursor) ([]*domain.Property, error) {
	defer cur.Close(ctx)

	out := []*domain.Property{}
	for cur.Next(ctx) {
		var doc propertyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the slug uniqueness constraint and the owner lookup
// index.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
