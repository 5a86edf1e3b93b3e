package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

type stubBookingService struct {
	createFn func(ctx context.Context, actor ports.Identity, input ports.CreateBookingInput) (*ports.BookingResult, error)
	cancelFn func(ctx context.Context, actor ports.Identity, bookingID string) error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, actor ports.Identity, input ports.CreateBookingInput) (*ports.BookingResult, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubBookingService) CancelBooking(ctx context.Context, actor ports.Identity, bookingID string) error {
	return s.cancelFn(ctx, actor, bookingID)
}

func (s *stubBookingService) ListTrips(context.Context, ports.Identity) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListHostBookings(context.Context, ports.Identity) ([]ports.HostBooking, error) {
	return nil, nil
}

type stubAvailabilityService struct {
	rangesFn func(ctx context.Context, propertyID string) ([]domain.DateRange, error)
}

func (s *stubAvailabilityService) UnavailableRanges(ctx context.Context, propertyID string) ([]domain.DateRange, error) {
	return s.rangesFn(ctx, propertyID)
}

func (s *stubAvailabilityService) IsAvailable(context.Context, string, time.Time, time.Time) (bool, error) {
	return true, nil
}

type stubPropertyService struct {
	getBySlugFn func(ctx context.Context, slug string) (*domain.Property, error)
}

func (s *stubPropertyService) Create(context.Context, ports.Identity, ports.CreatePropertyInput) (*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Update(context.Context, ports.Identity, ports.UpdatePropertyInput) (*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) Delete(context.Context, ports.Identity, string) error { return nil }

func (s *stubPropertyService) GetBySlug(ctx context.Context, slug string) (*domain.Property, error) {
	return s.getBySlugFn(ctx, slug)
}

func (s *stubPropertyService) ListActive(context.Context) ([]*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) ListMine(context.Context, ports.Identity) ([]*domain.Property, error) {
	return nil, nil
}

func (s *stubPropertyService) AddBlockedRange(context.Context, ports.Identity, ports.CreateBlockedRangeInput) (*domain.BlockedRange, error) {
	return nil, nil
}

func (s *stubPropertyService) RemoveBlockedRange(context.Context, ports.Identity, string, string) error {
	return nil
}

func newBookingEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestBookingHandler_Create_Success(t *testing.T) {
	e := newBookingEcho()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubBookingService{
		createFn: func(_ context.Context, actor ports.Identity, input ports.CreateBookingInput) (*ports.BookingResult, error) {
			if actor.SubjectID != "auth0|guest" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.PropertyID != "prop_1" {
				t.Fatalf("unexpected property: %s", input.PropertyID)
			}
			if !input.CheckIn.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected check-in: %v", input.CheckIn)
			}
			return &ports.BookingResult{
				BookingID: "booking_1", Status: "confirmed", Nights: 5, TotalPrice: 500, CreatedAt: created,
			}, nil
		},
	}
	handler := NewBookingHandler(stub, &stubAvailabilityService{}, &stubPropertyService{})

	body := strings.NewReader(`{"property_id":"prop_1","check_in":"2025-03-10","check_out":"2025-03-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("subject", "auth0|guest")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["booking_id"] != "booking_1" || resp["status"] != "confirmed" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["total_price"] != float64(500) {
		t.Fatalf("unexpected total: %v", resp["total_price"])
	}
}

func TestBookingHandler_Create_BadDateFormat(t *testing.T) {
	e := newBookingEcho()
	stub := &stubBookingService{
		createFn: func(context.Context, ports.Identity, ports.CreateBookingInput) (*ports.BookingResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub, &stubAvailabilityService{}, &stubPropertyService{})

	body := strings.NewReader(`{"property_id":"prop_1","check_in":"10/03/2025","check_out":"2025-03-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("subject", "auth0|guest")

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	e := newBookingEcho()
	stub := &stubBookingService{
		createFn: func(context.Context, ports.Identity, ports.CreateBookingInput) (*ports.BookingResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewBookingHandler(stub, &stubAvailabilityService{}, &stubPropertyService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"property_id":"prop_1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("subject", "auth0|guest")

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Create_NoClaims(t *testing.T) {
	e := newBookingEcho()
	handler := NewBookingHandler(&stubBookingService{}, &stubAvailabilityService{}, &stubPropertyService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestBookingHandler_Create_ConflictPassesThrough(t *testing.T) {
	e := newBookingEcho()
	stub := &stubBookingService{
		createFn: func(context.Context, ports.Identity, ports.CreateBookingInput) (*ports.BookingResult, error) {
			return nil, domain.ErrDateConflict
		},
	}
	handler := NewBookingHandler(stub, &stubAvailabilityService{}, &stubPropertyService{})

	body := strings.NewReader(`{"property_id":"prop_1","check_in":"2025-03-10","check_out":"2025-03-15"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("subject", "auth0|guest")

	// The sentinel propagates untouched; the central error handler maps it
	// to 409.
	if err := handler.Create(c); err != domain.ErrDateConflict {
		t.Fatalf("expected ErrDateConflict, got %v", err)
	}
}

func TestBookingHandler_Availability(t *testing.T) {
	e := newBookingEcho()
	availability := &stubAvailabilityService{
		rangesFn: func(_ context.Context, propertyID string) ([]domain.DateRange, error) {
			if propertyID != "prop_1" {
				t.Fatalf("unexpected property: %s", propertyID)
			}
			return []domain.DateRange{{
				From: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			}}, nil
		},
	}
	properties := &stubPropertyService{
		getBySlugFn: func(_ context.Context, slug string) (*domain.Property, error) {
			if slug != "cabana-abc123" {
				t.Fatalf("unexpected slug: %s", slug)
			}
			return &domain.Property{ID: "prop_1", Slug: slug}, nil
		},
	}
	handler := NewBookingHandler(&stubBookingService{}, availability, properties)

	req := httptest.NewRequest(http.MethodGet, "/v1/listings/cabana-abc123/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("cabana-abc123")

	if err := handler.Availability(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["from"] != "2025-03-10" || resp[0]["to"] != "2025-03-15" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBookingHandler_Availability_UnknownSlug(t *testing.T) {
	e := newBookingEcho()
	properties := &stubPropertyService{
		getBySlugFn: func(context.Context, string) (*domain.Property, error) {
			return nil, domain.ErrPropertyNotFound
		},
	}
	handler := NewBookingHandler(&stubBookingService{}, &stubAvailabilityService{}, properties)

	req := httptest.NewRequest(http.MethodGet, "/v1/listings/nope/availability", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("nope")

	if err := handler.Availability(c); err != domain.ErrPropertyNotFound {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}
