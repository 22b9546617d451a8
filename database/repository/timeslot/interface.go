// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"maidly/database"
	"maidly/models"
)

// ErrSlotFull is returned by Reserve when the guarded capacity update matches
// no document: the slot is blocked or already at capacity.
var ErrSlotFull = errors.New("time slot has no remaining capacity")

type TimeSlotRepository interface {
	GetByDateSlot(ctx context.Context, date, timeSlot string) (*models.TimeSlotAvailability, error)
	ListByDateRange(ctx context.Context, fromDate, toDate string) ([]models.TimeSlotAvailability, error)
	EnsureSlot(ctx context.Context, date, timeSlot string, capacity int) error
	Reserve(ctx context.Context, date, timeSlot string, capacity int) error
	Release(ctx context.Context, date, timeSlot string) error
	SetBlocked(ctx context.Context, date, timeSlot string, blocked bool, reason string) error
	EnsureIndexes() error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo() TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: database.DB().Collection("timeslot_availability"),
	}
}
