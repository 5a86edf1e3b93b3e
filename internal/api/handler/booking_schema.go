package handler

import "time"

// errorResponse is the standard error envelope returned on 4xx/5xx.
type errorResponse struct {
	Error string `json:"error"`
}

type createBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	CheckIn    string `json:"check_in"    validate:"required"`
	CheckOut   string `json:"check_out"   validate:"required"`
}

type createBookingResponse struct {
	BookingID  string    `json:"booking_id"`
	Status     string    `json:"status"`
	Nights     int       `json:"nights"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// hostBookingResponse adds the listing context to a booking for the host's
// guest overview.
type hostBookingResponse struct {
	bookingResponse
	PropertyTitle string `json:"property_title"`
	PropertySlug  string `json:"property_slug"`
}
