package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	rentalmongo "github.com/alquileresmvp/rental-system/internal/infrastructure/db/mongo"
)

// ensureIndexes creates the collection indexes at startup, most importantly
// the unique constraints on users.subject_id and properties.slug.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := rentalmongo.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := rentalmongo.NewPropertyRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := rentalmongo.NewBookingRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return rentalmongo.NewBlockedRangeRepository(db).EnsureIndexes(ctx)
}
