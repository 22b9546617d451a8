package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus tracks the payment side of a booking.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusIntentCreated PaymentStatus = "intent_created"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

// Frequency is how often a recurring clean repeats.
type Frequency string

const (
	FrequencyOneTime     Frequency = "one_time"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiWeekly    Frequency = "bi_weekly"
	FrequencyEvery3Weeks Frequency = "every_3_weeks"
	FrequencyMonthly     Frequency = "monthly"
)

// RoomSelection captures which rooms a clean covers. Boolean rooms are
// priced per presence, counted rooms per unit.
type RoomSelection struct {
	DiningRoom    bool `bson:"dining_room" json:"dining_room"`
	Kitchen       bool `bson:"kitchen" json:"kitchen"`
	LivingRoom    bool `bson:"living_room" json:"living_room"`
	MediaRoom     bool `bson:"media_room" json:"media_room"`
	GameRoom      bool `bson:"game_room" json:"game_room"`
	Office        bool `bson:"office" json:"office"`
	Bedrooms      int  `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int  `bson:"bathrooms" json:"bathrooms"`
	HalfBathrooms int  `bson:"half_bathrooms" json:"half_bathrooms"`
}

// ALaCarteItem is one add-on line on a booking. UnitPrice is snapshotted at
// quote time so catalog edits never change historical totals.
type ALaCarteItem struct {
	ServiceID string  `bson:"service_id" json:"service_id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// Booking represents a confirmed or pending cleaning job.
// Invariant: TotalAmount == BasePrice + RoomPrice + ALaCarteTotal - DiscountAmount, never negative.
type Booking struct {
	ID              string         `bson:"id" json:"id"`
	CustomerID      string         `bson:"customer_id" json:"customer_id"`
	GuestEmail      string         `bson:"guest_email,omitempty" json:"guest_email,omitempty"`
	HouseSize       string         `bson:"house_size" json:"house_size"` // band, e.g. "2000-2500"
	Frequency       Frequency      `bson:"frequency" json:"frequency"`
	Rooms           RoomSelection  `bson:"rooms" json:"rooms"`
	Services        []string       `bson:"services,omitempty" json:"services,omitempty"`
	ALaCarte        []ALaCarteItem `bson:"a_la_carte,omitempty" json:"a_la_carte,omitempty"`
	Date            string         `bson:"date" json:"date"`           // "YYYY-MM-DD"
	TimeSlot        string         `bson:"time_slot" json:"time_slot"` // e.g. "10:00-12:00"
	ZipCode         string         `bson:"zip_code" json:"zip_code"`
	Address         string         `bson:"address,omitempty" json:"address,omitempty"`
	BasePrice       float64        `bson:"base_price" json:"base_price"`
	RoomPrice       float64        `bson:"room_price" json:"room_price"`
	ALaCarteTotal   float64        `bson:"a_la_carte_total" json:"a_la_carte_total"`
	DiscountAmount  float64        `bson:"discount_amount" json:"discount_amount"`
	TotalAmount     float64        `bson:"total_amount" json:"total_amount"`
	PromoCode       string         `bson:"promo_code,omitempty" json:"promo_code,omitempty"`
	Status          BookingStatus  `bson:"status" json:"status"`
	PaymentStatus   PaymentStatus  `bson:"payment_status" json:"payment_status"`
	PaymentIntentID string         `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	CleanerID       string         `bson:"cleaner_id,omitempty" json:"cleaner_id,omitempty"`
	CalendarEventID string         `bson:"calendar_event_id,omitempty" json:"calendar_event_id,omitempty"`
	EstimatedHours  float64        `bson:"estimated_hours" json:"estimated_hours"`
	AssignmentNotes string         `bson:"assignment_notes,omitempty" json:"assignment_notes,omitempty"`
	IdempotencyKey  string         `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt       time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `bson:"updated_at" json:"updated_at"`
	ClockInAt       *time.Time     `bson:"clock_in_at,omitempty" json:"clock_in_at,omitempty"`
	ClockOutAt      *time.Time     `bson:"clock_out_at,omitempty" json:"clock_out_at,omitempty"`
	CancelledAt     *time.Time     `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}
