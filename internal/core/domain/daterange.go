package domain

import "time"

// DateRange is a half-open interval [From, To): the checkout night is not
// occupied, so a range ending on a date never overlaps a range starting on
// the same date. Both endpoints are UTC dates (midnight).
type DateRange struct {
	From time.Time `json:"from" bson:"from"`
	To   time.Time `json:"to" bson:"to"`
}

// Overlaps reports whether r and other share at least one night under the
// half-open definition: From < other.To && To > other.From.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.From.Before(other.To) && r.To.After(other.From)
}

// Nights returns the number of occupied nights in r. Zero or negative-length
// ranges yield 0.
func (r DateRange) Nights() int {
	n := int(r.To.Sub(r.From).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// Valid reports whether r describes at least one night.
func (r DateRange) Valid() bool {
	return r.From.Before(r.To)
}

// Date truncates t to its UTC calendar date (midnight).
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
