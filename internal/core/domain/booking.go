package domain

import "time"

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. Cancelled
// is terminal and removes the booking from availability.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CountsAgainstAvailability reports whether a booking in state s blocks the
// property's calendar.
func (s BookingStatus) CountsAgainstAvailability() bool {
	return s != BookingCancelled
}

// Booking is a guest reservation over a half-open date interval
// [CheckIn, CheckOut). TotalPrice is snapshotted at creation time and never
// recomputed from later price edits.
type Booking struct {
	ID         string        `json:"id" bson:"_id,omitempty"`
	PropertyID string        `json:"property_id" bson:"property_id"`
	GuestID    string        `json:"guest_id" bson:"guest_id"`
	CheckIn    time.Time     `json:"check_in" bson:"check_in"`
	CheckOut   time.Time     `json:"check_out" bson:"check_out"`
	Nights     int           `json:"nights" bson:"nights"`
	TotalPrice float64       `json:"total_price" bson:"total_price"`
	Status     BookingStatus `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" bson:"updated_at"`
}

// Range returns the occupied interval of the booking.
func (b *Booking) Range() DateRange {
	return DateRange{From: b.CheckIn, To: b.CheckOut}
}
