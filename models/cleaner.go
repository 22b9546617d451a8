package models

import "time"

// Cleaner is a staff member who can be assigned to bookings.
type Cleaner struct {
	ID                  string    `bson:"id" json:"id"`
	FirstName           string    `bson:"first_name" json:"first_name"`
	LastName            string    `bson:"last_name" json:"last_name"`
	Email               string    `bson:"email" json:"email"`
	Phone               string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Active              bool      `bson:"active" json:"active"`
	CalendarIntegration bool      `bson:"calendar_integration" json:"calendar_integration"`
	CalendarRef         string    `bson:"calendar_ref,omitempty" json:"calendar_ref,omitempty"`
	CalendarCredentials []byte    `bson:"calendar_credentials,omitempty" json:"-"` // opaque provider blob
	FCMToken            string    `bson:"fcm_token,omitempty" json:"-"`
	Rating              float64   `bson:"rating" json:"rating"`
	TotalJobs           int       `bson:"total_jobs" json:"total_jobs"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
