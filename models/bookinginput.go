package models

import "time"

// ALaCarteRequest is one requested add-on line (service reference + quantity).
type ALaCarteRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CreateBookingInput is the plain-data request for booking creation.
// CustomerID may reference a guest checkout identity.
type CreateBookingInput struct {
	CustomerID     string            `json:"customer_id" binding:"required"`
	GuestEmail     string            `json:"guest_email,omitempty"`
	HouseSize      string            `json:"house_size"`
	Frequency      Frequency         `json:"frequency"`
	Rooms          RoomSelection     `json:"rooms"`
	Services       []string          `json:"services,omitempty"`
	ALaCarte       []ALaCarteRequest `json:"a_la_carte,omitempty"`
	Date           string            `json:"date"`
	TimeSlot       string            `json:"time_slot"`
	ZipCode        string            `json:"zip_code"`
	Address        string            `json:"address,omitempty"`
	PromoCode      string            `json:"promo_code,omitempty"`
	PaymentProfile string            `json:"payment_profile,omitempty"` // external processor customer ref
	IdempotencyKey string            `json:"-"`
}

// QuoteInput is the plain-data request for a price quote. It is the pricing
// subset of CreateBookingInput.
type QuoteInput struct {
	CustomerID string            `json:"customer_id,omitempty"`
	HouseSize  string            `json:"house_size"`
	Frequency  Frequency         `json:"frequency"`
	Rooms      RoomSelection     `json:"rooms"`
	ALaCarte   []ALaCarteRequest `json:"a_la_carte,omitempty"`
	PromoCode  string            `json:"promo_code,omitempty"`
}

// AssignmentInput is the admin request to put a booking on a cleaner's calendar.
type AssignmentInput struct {
	BookingID string    `json:"booking_id" binding:"required"`
	CleanerID string    `json:"cleaner_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Notes     string    `json:"notes,omitempty"`
}

// AssignmentResult summarizes a completed cleaner assignment.
type AssignmentResult struct {
	BookingID       string    `json:"booking_id"`
	CleanerID       string    `json:"cleaner_id"`
	CalendarEventID string    `json:"calendar_event_id"`
	FallbackEventID bool      `json:"fallback_event_id"` // true when the calendar write failed and a local id was issued
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Notes           string    `json:"notes,omitempty"`
}
