package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alquileresmvp/rental-system/internal/api/metrics"
	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
)

// BookingHandler handles HTTP requests for reservation operations.
type BookingHandler struct {
	bookings     ports.BookingService
	availability ports.AvailabilityService
	properties   ports.PropertyService
}

func NewBookingHandler(bookings ports.BookingService, availability ports.AvailabilityService, properties ports.PropertyService) *BookingHandler {
	return &BookingHandler{bookings: bookings, availability: availability, properties: properties}
}

// Create handles POST /v1/bookings.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Reservation request"
// @Success      201   {object}  createBookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return err
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return err
	}

	result, err := h.bookings.CreateBooking(c.Request().Context(), actor, ports.CreateBookingInput{
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDateConflict) {
			metrics.BookingConflictsTotal.Inc()
		}
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createBookingResponse{
		BookingID:  result.BookingID,
		Status:     result.Status,
		Nights:     result.Nights,
		TotalPrice: result.TotalPrice,
		CreatedAt:  result.CreatedAt,
	})
}

// Cancel handles POST /v1/bookings/:id/cancel.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.bookings.CancelBooking(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.BookingsCancelledTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Availability handles GET /v1/listings/:slug/availability — the disabled
// date ranges the calendar UI renders.
//
// @Summary      List a property's unavailable date ranges
// @Tags         bookings
// @Produce      json
// @Param        slug  path     string  true  "Property slug"
// @Success      200   {array}  dateRangeResponse
// @Failure      404   {object} errorResponse
// @Router       /v1/listings/{slug}/availability [get]
func (h *BookingHandler) Availability(c echo.Context) error {
	metrics.AvailabilityRequestsTotal.Inc()

	property, err := h.properties.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	ranges, err := h.availability.UnavailableRanges(c.Request().Context(), property.ID)
	if err != nil {
		return err
	}

	out := make([]dateRangeResponse, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, dateRangeResponse{
			From: r.From.Format(dateLayout),
			To:   r.To.Format(dateLayout),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListTrips handles GET /v1/trips — the guest's own bookings.
func (h *BookingHandler) ListTrips(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	trips, err := h.bookings.ListTrips(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]bookingResponse, 0, len(trips))
	for _, b := range trips {
		out = append(out, toBookingResponse(b))
	}
	return c.JSON(http.StatusOK, out)
}

// ListHostBookings handles GET /v1/host/bookings — reservations across the
// host's listings.
func (h *BookingHandler) ListHostBookings(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	hostBookings, err := h.bookings.ListHostBookings(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]hostBookingResponse, 0, len(hostBookings))
	for _, hb := range hostBookings {
		out = append(out, hostBookingResponse{
			bookingResponse: toBookingResponse(hb.Booking),
			PropertyTitle:   hb.Property.Title,
			PropertySlug:    hb.Property.Slug,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		CheckIn:    b.CheckIn.Format(dateLayout),
		CheckOut:   b.CheckOut.Format(dateLayout),
		Nights:     b.Nights,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}
