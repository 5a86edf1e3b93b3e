package ports

import (
	"context"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// PropertyRepository defines persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	// FindByID returns domain.ErrPropertyNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	// FindBySlug returns domain.ErrPropertyNotFound when absent.
	FindBySlug(ctx context.Context, slug string) (*domain.Property, error)
	// Update persists the mutable fields of p. OwnerID and CreatedAt are
	// never touched.
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
	// ListActive returns active listings, newest first.
	ListActive(ctx context.Context) ([]*domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Property, error)
}

// BlockedRangeRepository defines persistence for host blackout intervals.
type BlockedRangeRepository interface {
	Create(ctx context.Context, br *domain.BlockedRange) (*domain.BlockedRange, error)
	// Delete removes the range only when it belongs to propertyID; returns
	// domain.ErrBlockNotFound otherwise.
	Delete(ctx context.Context, propertyID, blockID string) error
	ListByProperty(ctx context.Context, propertyID string) ([]*domain.BlockedRange, error)
	DeleteByProperty(ctx context.Context, propertyID string) error
}
