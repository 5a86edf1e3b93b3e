package domain

import "time"

// Property is a rentable listing. OwnerID is immutable after creation and is
// the only identity allowed to mutate or delete the record.
type Property struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Slug          string    `json:"slug" bson:"slug"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Address       string    `json:"address" bson:"address"`
	City          string    `json:"city" bson:"city"`
	Province      string    `json:"province" bson:"province"`
	ZipCode       string    `json:"zip_code" bson:"zip_code"`
	PricePerNight float64   `json:"price_per_night" bson:"price_per_night"`
	MaxGuests     int       `json:"max_guests" bson:"max_guests"`
	Bedrooms      int       `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int       `json:"bathrooms" bson:"bathrooms"`
	Images        []string  `json:"images" bson:"images"`
	Amenities     []string  `json:"amenities" bson:"amenities"`
	WhatsApp      string    `json:"whatsapp,omitempty" bson:"whatsapp,omitempty"`
	OwnerID       string    `json:"owner_id" bson:"owner_id"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// BlockedRange is a host-declared unavailable interval, e.g. maintenance.
// It counts against availability regardless of any booking state.
type BlockedRange struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	PropertyID string    `json:"property_id" bson:"property_id"`
	Range      DateRange `json:"range" bson:"range,inline"`
	Note       string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
