package ports

import (
	"context"
	"time"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// AvailabilityService merges confirmed bookings and host blocked ranges into
// a single unavailable set and classifies candidate intervals against it.
// It never raises a domain error for an unavailable candidate — callers
// translate false into a user-facing conflict.
type AvailabilityService interface {
	// UnavailableRanges returns the property's disjoint unavailable
	// intervals, ascending by start, in the {from, to} shape the calendar
	// UI consumes.
	UnavailableRanges(ctx context.Context, propertyID string) ([]domain.DateRange, error)
	// IsAvailable reports whether [from, to) overlaps no unavailable
	// interval. It is also false for from >= to and for check-ins before
	// the current date.
	IsAvailable(ctx context.Context, propertyID string, from, to time.Time) (bool, error)
}
