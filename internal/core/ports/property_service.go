package ports

import (
	"context"
	"time"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// CreatePropertyInput carries the raw form fields for a new listing. Price
// arrives as the untyped string the form layer extracted; the service owns
// all coercion.
type CreatePropertyInput struct {
	Title       string
	Description string
	Address     string
	City        string
	Province    string
	ZipCode     string
	Price       string
	MaxGuests   int
	Bedrooms    int
	Bathrooms   int
	Images      []string
	Amenities   []string
	WhatsApp    string
}

// UpdatePropertyInput mirrors CreatePropertyInput for edits. ReSlug asks for
// a fresh slug derived from the (possibly changed) title.
type UpdatePropertyInput struct {
	PropertyID  string
	Title       string
	Description string
	Address     string
	City        string
	Province    string
	ZipCode     string
	Price       string
	MaxGuests   int
	Bedrooms    int
	Bathrooms   int
	Images      []string
	Amenities   []string
	WhatsApp    string
	ReSlug      bool
}

// CreateBlockedRangeInput declares a host blackout interval.
type CreateBlockedRangeInput struct {
	PropertyID string
	From       time.Time
	To         time.Time
	Note       string
}

// PropertyService defines the listing use cases. Every operation that
// targets an existing property runs the ownership guard before any write.
type PropertyService interface {
	Create(ctx context.Context, actor Identity, input CreatePropertyInput) (*domain.Property, error)
	Update(ctx context.Context, actor Identity, input UpdatePropertyInput) (*domain.Property, error)
	// Delete removes the listing and its blocked ranges. It is refused with
	// domain.ErrActiveBookings while non-cancelled future bookings exist.
	Delete(ctx context.Context, actor Identity, propertyID string) error
	GetBySlug(ctx context.Context, slug string) (*domain.Property, error)
	ListActive(ctx context.Context) ([]*domain.Property, error)
	ListMine(ctx context.Context, actor Identity) ([]*domain.Property, error)
	AddBlockedRange(ctx context.Context, actor Identity, input CreateBlockedRangeInput) (*domain.BlockedRange, error)
	RemoveBlockedRange(ctx context.Context, actor Identity, propertyID, blockID string) error
}
