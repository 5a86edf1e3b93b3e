package domain

import "errors"

// Sentinel errors shared across the core. The API layer maps each of them to
// a stable HTTP status and a fixed user-facing message; anything else is
// treated as an opaque persistence failure.
var (
	ErrUnauthenticated   = errors.New("no authenticated actor")
	ErrForbidden         = errors.New("actor is not the owner")
	ErrUserNotFound      = errors.New("user not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBlockNotFound     = errors.New("blocked range not found")
	ErrValidation        = errors.New("invalid input")
	ErrDateConflict      = errors.New("dates unavailable")
	ErrActiveBookings    = errors.New("property has active bookings")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrDuplicateSlug     = errors.New("slug already exists")
)
