// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"maidly/models"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking by idempotency key: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetAssignment writes the cleaner assignment and moves the booking to
// confirmed. Only pending or already-confirmed bookings (reassignment) match.
func (r *mongoBookingRepo) SetAssignment(ctx context.Context, id, cleanerID, calendarEventID, notes string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusConfirmed}},
	}
	update := bson.M{
		"$set": bson.M{
			"cleaner_id":        cleanerID,
			"calendar_event_id": calendarEventID,
			"assignment_notes":  notes,
			"status":            models.BookingStatusConfirmed,
			"updated_at":        time.Now(),
		},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set assignment on booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

// ClockIn moves confirmed -> in_progress as one guarded update.
func (r *mongoBookingRepo) ClockIn(ctx context.Context, id string, at time.Time) (bool, error) {
	return r.transition(ctx, id,
		bson.A{models.BookingStatusConfirmed},
		bson.M{"status": models.BookingStatusInProgress, "clock_in_at": at})
}

// ClockOut moves in_progress -> completed as one guarded update.
func (r *mongoBookingRepo) ClockOut(ctx context.Context, id string, at time.Time) (bool, error) {
	return r.transition(ctx, id,
		bson.A{models.BookingStatusInProgress},
		bson.M{"status": models.BookingStatusCompleted, "clock_out_at": at})
}

// Cancel is reachable from pending or confirmed only.
func (r *mongoBookingRepo) Cancel(ctx context.Context, id string, at time.Time) (bool, error) {
	return r.transition(ctx, id,
		bson.A{models.BookingStatusPending, models.BookingStatusConfirmed},
		bson.M{"status": models.BookingStatusCancelled, "cancelled_at": at})
}

func (r *mongoBookingRepo) transition(ctx context.Context, id string, from bson.A, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
