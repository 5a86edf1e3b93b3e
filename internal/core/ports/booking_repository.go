package ports

import (
	"context"
	"time"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// BookingRepository defines persistence operations for reservations.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// FindByID returns domain.ErrBookingNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListActiveByProperty returns all non-cancelled bookings for a
	// property, ascending by check-in.
	ListActiveByProperty(ctx context.Context, propertyID string) ([]*domain.Booking, error)
	// HasActiveAfter reports whether the property has any non-cancelled
	// booking whose check-out falls after the given date.
	HasActiveAfter(ctx context.Context, propertyID string, date time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	// ListByGuest returns the guest's bookings, newest first.
	ListByGuest(ctx context.Context, guestID string) ([]*domain.Booking, error)
	// ListByProperties returns bookings across the given properties,
	// ascending by check-in. Used for the host's guest overview.
	ListByProperties(ctx context.Context, propertyIDs []string) ([]*domain.Booking, error)
}
