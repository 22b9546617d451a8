package models

import "time"

// TimeSlotAvailability tracks booked capacity for one (date, time slot) pair.
// Records are created lazily: a missing record means full default capacity.
// Invariant: 0 <= BookedCount <= TotalCapacity unless Blocked.
type TimeSlotAvailability struct {
	ID            string    `bson:"id" json:"id"`
	Date          string    `bson:"date" json:"date"`           // "YYYY-MM-DD"
	TimeSlot      string    `bson:"time_slot" json:"time_slot"` // e.g. "10:00-12:00"
	TotalCapacity int       `bson:"total_capacity" json:"total_capacity"`
	BookedCount   int       `bson:"booked_count" json:"booked_count"`
	Blocked       bool      `bson:"blocked" json:"blocked"`
	BlockReason   string    `bson:"block_reason,omitempty" json:"block_reason,omitempty"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
