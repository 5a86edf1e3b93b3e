package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type availabilityService struct {
	bookings ports.BookingRepository
	blocks   ports.BlockedRangeRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAvailabilityService merges non-cancelled bookings and host blocked
// ranges into a single unavailable set per property.
func NewAvailabilityService(bookings ports.BookingRepository, blocks ports.BlockedRangeRepository, logger zerolog.Logger) ports.AvailabilityService {
	return &availabilityService{
		bookings: bookings,
		blocks:   blocks,
		logger:   logger,
		now:      time.Now,
	}
}

// NewAvailabilityServiceAt is NewAvailabilityService with an injectable
// clock, for tests that pin "today".
func NewAvailabilityServiceAt(bookings ports.BookingRepository, blocks ports.BlockedRangeRepository, logger zerolog.Logger, now func() time.Time) ports.AvailabilityService {
	return &availabilityService{bookings: bookings, blocks: blocks, logger: logger, now: now}
}

func (s *availabilityService) UnavailableRanges(ctx context.Context, propertyID string) ([]domain.DateRange, error) {
	bookings, err := s.bookings.ListActiveByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	ranges := make([]domain.DateRange, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		ranges = append(ranges, b.Range())
	}
	for _, br := range blocks {
		ranges = append(ranges, br.Range)
	}

	// Ascending by start for calendar consumption.
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].From.Before(ranges[j].From) })
	return ranges, nil
}

// IsAvailable classifies the candidate interval; it never raises for an
// unavailable range. Zero- or negative-length stays and retroactive
// check-ins are unavailable by definition.
func (s *availabilityService) IsAvailable(ctx context.Context, propertyID string, from, to time.Time) (bool, error) {
	candidate := domain.DateRange{From: domain.Date(from), To: domain.Date(to)}
	if !candidate.Valid() {
		return false, nil
	}
	if candidate.From.Before(domain.Date(s.now())) {
		return false, nil
	}

	taken, err := s.UnavailableRanges(ctx, propertyID)
	if err != nil {
		return false, err
	}
	for _, r := range taken {
		if candidate.Overlaps(r) {
			return false, nil
		}
	}
	return true, nil
}
