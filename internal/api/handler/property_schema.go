package handler

import "time"

// Request/response types owned by the transport layer. They are
// intentionally separate from domain types so the JSON contract is not
// coupled to internal changes.

type propertyPayload struct {
	Title       string   `json:"title"        validate:"required"`
	Description string   `json:"description"  validate:"required"`
	Address     string   `json:"address"      validate:"required"`
	City        string   `json:"city"`
	Province    string   `json:"province"`
	ZipCode     string   `json:"zip_code"`
	Price       string   `json:"price"`
	MaxGuests   int      `json:"max_guests"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	WhatsApp    string   `json:"whatsapp"`
}

type updatePropertyRequest struct {
	propertyPayload
	ReSlug bool `json:"re_slug"`
}

type propertyResponse struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Province      string    `json:"province"`
	ZipCode       string    `json:"zip_code"`
	PricePerNight float64   `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Images        []string  `json:"images"`
	Amenities     []string  `json:"amenities"`
	WhatsApp      string    `json:"whatsapp,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

type createBlockRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to"   validate:"required"`
	Note string `json:"note"`
}

type blockedRangeResponse struct {
	ID   string    `json:"id"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	Note string    `json:"note,omitempty"`
}

// dateRangeResponse is the {from, to} pair the calendar UI consumes for
// disabled dates.
type dateRangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}
