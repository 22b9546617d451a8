// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"maidly/database"
	"maidly/models"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error

	// Guarded status transitions. Each returns false when the booking was not
	// in a state the transition allows (the filter matched no document).
	SetAssignment(ctx context.Context, id, cleanerID, calendarEventID, notes string) (bool, error)
	ClockIn(ctx context.Context, id string, at time.Time) (bool, error)
	ClockOut(ctx context.Context, id string, at time.Time) (bool, error)
	Cancel(ctx context.Context, id string, at time.Time) (bool, error)

	CountByCleanerDateSlot(ctx context.Context, cleanerID, date, timeSlot string) (int64, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
