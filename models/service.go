package models

import "time"

// Service is an admin-managed catalog entry. Price is nil for services whose
// unit price depends on the house size (see services/pricing tier tables).
type Service struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Category      string    `bson:"category" json:"category"`
	IsALaCarte    bool      `bson:"is_a_la_carte" json:"is_a_la_carte"`
	Price         *float64  `bson:"price,omitempty" json:"price,omitempty"`
	DurationHours float64   `bson:"duration_hours" json:"duration_hours"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
