package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

// PropertyLocker serializes the availability-check/insert pair per property.
// Acquire blocks until the property mutex is held or the wait budget runs
// out; the returned release function must be called exactly once.
type PropertyLocker interface {
	Acquire(ctx context.Context, propertyID string) (release func(), err error)
}

// BookingEvents receives lifecycle notifications after a booking write has
// committed. Implementations must not block the request path.
type BookingEvents interface {
	BookingConfirmed(b *domain.Booking)
	BookingCancelled(b *domain.Booking)
}

type bookingService struct {
	identity     ports.IdentityService
	properties   ports.PropertyRepository
	bookings     ports.BookingRepository
	availability ports.AvailabilityService
	locker       PropertyLocker
	events       BookingEvents
	logger       zerolog.Logger
}

// NewBookingService wires the reservation use cases.
func NewBookingService(
	identity ports.IdentityService,
	properties ports.PropertyRepository,
	bookings ports.BookingRepository,
	availability ports.AvailabilityService,
	locker PropertyLocker,
	events BookingEvents,
	logger zerolog.Logger,
) ports.BookingService {
	return &bookingService{
		identity:     identity,
		properties:   properties,
		bookings:     bookings,
		availability: availability,
		locker:       locker,
		events:       events,
		logger:       logger,
	}
}

// CreateBooking reserves [CheckIn, CheckOut) for the acting guest. The
// availability read and the insert would otherwise race between two
// concurrent requests, so both run under the per-property lock: the loser
// re-reads availability after the winner's insert committed and observes
// the conflict. Lock wait exhaustion is reported as the same ErrDateConflict
// the honest re-check would produce.
func (s *bookingService) CreateBooking(ctx context.Context, actor ports.Identity, input ports.CreateBookingInput) (*ports.BookingResult, error) {
	guest, err := s.identity.ResolveOrProvision(ctx, actor)
	if err != nil {
		return nil, err
	}

	checkIn := domain.Date(input.CheckIn)
	checkOut := domain.Date(input.CheckOut)
	stay := domain.DateRange{From: checkIn, To: checkOut}
	if !stay.Valid() {
		return nil, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}

	property, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, property.ID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("property_id", property.ID).
			Str("actor", actor.SubjectID).
			Msg("booking lock not acquired")
		return nil, domain.ErrDateConflict
	}
	defer release()

	available, err := s.availability.IsAvailable(ctx, property.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrDateConflict
	}

	now := time.Now().UTC()
	nights := stay.Nights()
	booking := &domain.Booking{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     nights,
		// Point-in-time snapshot of the current nightly price; later price
		// edits never touch existing bookings.
		TotalPrice: property.PricePerNight * float64(nights),
		Status:     domain.BookingConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		s.logger.Error().Err(err).
			Str("property_id", property.ID).
			Str("actor", actor.SubjectID).
			Msg("failed to persist booking")
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", created.ID).
		Str("property_id", property.ID).
		Str("guest_id", guest.ID).
		Int("nights", nights).
		Msg("booking confirmed")

	s.events.BookingConfirmed(created)

	return &ports.BookingResult{
		BookingID:  created.ID,
		Status:     string(created.Status),
		Nights:     created.Nights,
		TotalPrice: created.TotalPrice,
		CreatedAt:  created.CreatedAt,
	}, nil
}

// CancelBooking moves a booking to its terminal cancelled state, releasing
// the dates. The booking's guest and the property's owner are both allowed
// to cancel; anyone else is forbidden.
func (s *bookingService) CancelBooking(ctx context.Context, actor ports.Identity, bookingID string) error {
	user, err := s.identity.Resolve(ctx, actor)
	if err != nil {
		return err
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.GuestID != user.ID {
		property, err := s.properties.FindByID(ctx, booking.PropertyID)
		if err != nil {
			return err
		}
		if property.OwnerID != user.ID {
			return domain.ErrForbidden
		}
	}

	if !booking.Status.CanTransitionTo(domain.BookingCancelled) {
		return domain.ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, domain.BookingCancelled); err != nil {
		s.logger.Error().Err(err).
			Str("booking_id", booking.ID).
			Str("property_id", booking.PropertyID).
			Str("actor", actor.SubjectID).
			Msg("failed to cancel booking")
		return err
	}

	booking.Status = domain.BookingCancelled
	s.logger.Info().Str("booking_id", booking.ID).Str("property_id", booking.PropertyID).Msg("booking cancelled")
	s.events.BookingCancelled(booking)
	return nil
}

func (s *bookingService) ListTrips(ctx context.Context, actor ports.Identity) ([]*domain.Booking, error) {
	user, err := s.identity.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByGuest(ctx, user.ID)
}

// ListHostBookings returns every booking on the actor's listings, paired
// with the listing itself.
func (s *bookingService) ListHostBookings(ctx context.Context, actor ports.Identity) ([]ports.HostBooking, error) {
	user, err := s.identity.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}

	mine, err := s.properties.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return []ports.HostBooking{}, nil
	}

	byID := make(map[string]*domain.Property, len(mine))
	ids := make([]string, 0, len(mine))
	for _, p := range mine {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	bookings, err := s.bookings.ListByProperties(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.HostBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ports.HostBooking{Booking: b, Property: byID[b.PropertyID]})
	}
	return out, nil
}
