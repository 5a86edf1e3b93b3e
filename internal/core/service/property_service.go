package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type propertyService struct {
	identity   ports.IdentityService
	guard      *OwnershipGuard
	properties ports.PropertyRepository
	blocks     ports.BlockedRangeRepository
	bookings   ports.BookingRepository
	logger     zerolog.Logger
}

// NewPropertyService wires the listing use cases. The ownership guard runs
// before every write that targets an existing property.
func NewPropertyService(
	identity ports.IdentityService,
	guard *OwnershipGuard,
	properties ports.PropertyRepository,
	blocks ports.BlockedRangeRepository,
	bookings ports.BookingRepository,
	logger zerolog.Logger,
) ports.PropertyService {
	return &propertyService{
		identity:   identity,
		guard:      guard,
		properties: properties,
		blocks:     blocks,
		bookings:   bookings,
		logger:     logger,
	}
}

func (s *propertyService) Create(ctx context.Context, actor ports.Identity, input ports.CreatePropertyInput) (*domain.Property, error) {
	owner, err := s.identity.ResolveOrProvision(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := validateListingFields(input.Title, input.Description, input.Address); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	property := &domain.Property{
		Slug:          domain.MakeSlug(input.Title),
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Address:       strings.TrimSpace(input.Address),
		City:          strings.TrimSpace(input.City),
		Province:      strings.TrimSpace(input.Province),
		ZipCode:       strings.TrimSpace(input.ZipCode),
		PricePerNight: parsePrice(input.Price),
		MaxGuests:     input.MaxGuests,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		Images:        normalizeList(input.Images),
		Amenities:     normalizeList(input.Amenities),
		WhatsApp:      strings.TrimSpace(input.WhatsApp),
		OwnerID:       owner.ID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.properties.Create(ctx, property)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create property")
		return nil, err
	}

	s.logger.Info().Str("property_id", created.ID).Str("slug", created.Slug).Str("owner_id", owner.ID).Msg("property created")
	return created, nil
}

func (s *propertyService) Update(ctx context.Context, actor ports.Identity, input ports.UpdatePropertyInput) (*domain.Property, error) {
	property, err := s.guard.AssertOwner(ctx, actor, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := validateListingFields(input.Title, input.Description, input.Address); err != nil {
		return nil, err
	}

	property.Title = strings.TrimSpace(input.Title)
	property.Description = strings.TrimSpace(input.Description)
	property.Address = strings.TrimSpace(input.Address)
	property.City = strings.TrimSpace(input.City)
	property.Province = strings.TrimSpace(input.Province)
	property.ZipCode = strings.TrimSpace(input.ZipCode)
	property.PricePerNight = parsePrice(input.Price)
	property.MaxGuests = input.MaxGuests
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Images = normalizeList(input.Images)
	property.Amenities = normalizeList(input.Amenities)
	property.WhatsApp = strings.TrimSpace(input.WhatsApp)
	if input.ReSlug {
		property.Slug = domain.MakeSlug(input.Title)
	}
	property.UpdatedAt = time.Now().UTC()

	if err := s.properties.Update(ctx, property); err != nil {
		s.logger.Error().Err(err).Str("property_id", property.ID).Str("actor", actor.SubjectID).Msg("failed to update property")
		return nil, err
	}
	return property, nil
}

// Delete refuses to remove a listing while non-cancelled future bookings
// exist. Blocked ranges are cleaned up with the listing.
func (s *propertyService) Delete(ctx context.Context, actor ports.Identity, propertyID string) error {
	property, err := s.guard.AssertOwner(ctx, actor, propertyID)
	if err != nil {
		return err
	}

	active, err := s.bookings.HasActiveAfter(ctx, property.ID, domain.Date(time.Now()))
	if err != nil {
		return err
	}
	if active {
		return domain.ErrActiveBookings
	}

	if err := s.blocks.DeleteByProperty(ctx, property.ID); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, property.ID); err != nil {
		s.logger.Error().Err(err).Str("property_id", property.ID).Str("actor", actor.SubjectID).Msg("failed to delete property")
		return err
	}

	s.logger.Info().Str("property_id", property.ID).Msg("property deleted")
	return nil
}

func (s *propertyService) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	return s.properties.FindBySlug(ctx, slug)
}

func (s *propertyService) ListActive(ctx context.Context) ([]*domain.Property, error) {
	return s.properties.ListActive(ctx)
}

func (s *propertyService) ListMine(ctx context.Context, actor ports.Identity) ([]*domain.Property, error) {
	user, err := s.identity.Resolve(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.properties.ListByOwner(ctx, user.ID)
}

func (s *propertyService) AddBlockedRange(ctx context.Context, actor ports.Identity, input ports.CreateBlockedRangeInput) (*domain.BlockedRange, error) {
	property, err := s.guard.AssertOwner(ctx, actor, input.PropertyID)
	if err != nil {
		return nil, err
	}

	r := domain.DateRange{From: domain.Date(input.From), To: domain.Date(input.To)}
	if !r.Valid() {
		return nil, fmt.Errorf("%w: blocked range must span at least one night", domain.ErrValidation)
	}

	return s.blocks.Create(ctx, &domain.BlockedRange{
		PropertyID: property.ID,
		Range:      r,
		Note:       strings.TrimSpace(input.Note),
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *propertyService) RemoveBlockedRange(ctx context.Context, actor ports.Identity, propertyID, blockID string) error {
	property, err := s.guard.AssertOwner(ctx, actor, propertyID)
	if err != nil {
		return err
	}
	return s.blocks.Delete(ctx, property.ID, blockID)
}

// validateListingFields enforces the hard requirements of a listing. Missing
// title, description or address is a ValidationError; everything else is
// coerced leniently.
func validateListingFields(title, description, address string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case strings.TrimSpace(description) == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case strings.TrimSpace(address) == "":
		return fmt.Errorf("%w: address is required", domain.ErrValidation)
	}
	return nil
}

// parsePrice coerces a raw form value to a non-negative nightly price.
// Unparseable or negative input collapses to 0 instead of failing the whole
// request.
func parsePrice(raw string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// normalizeList drops empty entries and guarantees a non-nil slice, so the
// stored document never carries null where the UI expects an array.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
