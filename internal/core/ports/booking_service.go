package ports

import (
	"context"
	"time"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
)

// CreateBookingInput carries a reservation request. CheckIn/CheckOut are
// calendar dates; the occupied interval is the half-open [CheckIn, CheckOut).
type CreateBookingInput struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

// BookingResult is the confirmation reference returned to the caller.
type BookingResult struct {
	BookingID  string
	Status     string
	Nights     int
	TotalPrice float64
	CreatedAt  time.Time
}

// HostBooking pairs a booking with the listing it targets, for the host's
// guest overview.
type HostBooking struct {
	Booking  *domain.Booking
	Property *domain.Property
}

// BookingService defines the reservation use cases.
type BookingService interface {
	// CreateBooking provisions the acting guest on demand, validates the
	// range against availability, snapshots the total price and persists a
	// confirmed booking. Overlapping requests fail with
	// domain.ErrDateConflict — including the loser of a race that passed
	// the availability check first.
	CreateBooking(ctx context.Context, actor Identity, input CreateBookingInput) (*BookingResult, error)
	// CancelBooking moves the booking to cancelled, releasing its dates.
	// Allowed for the booking's guest and for the property's owner.
	CancelBooking(ctx context.Context, actor Identity, bookingID string) error
	ListTrips(ctx context.Context, actor Identity) ([]*domain.Booking, error)
	ListHostBookings(ctx context.Context, actor Identity) ([]HostBooking, error)
}
