// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"maidly/models"
)

func (r *mongoTimeSlotRepo) GetByDateSlot(ctx context.Context, date, timeSlot string) (*models.TimeSlotAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time_slot": timeSlot}
	var slot models.TimeSlotAvailability
	err := r.coll.FindOne(ctx, filter).Decode(&slot)
	if err == mongo.ErrNoDocuments {
		// Absence means the slot was never touched: full default capacity.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslot %s %s: %w", date, timeSlot, err)
	}
	return &slot, nil
}

func (r *mongoTimeSlotRepo) ListByDateRange(ctx context.Context, fromDate, toDate string) ([]models.TimeSlotAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": bson.M{"$gte": fromDate, "$lte": toDate}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list timeslots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlotAvailability
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// EnsureSlot lazily creates the availability record for (date, timeSlot).
// Concurrent upserts against the unique index may race; the loser's duplicate
// key error is ignored since the document then exists.
func (r *mongoTimeSlotRepo) EnsureSlot(ctx context.Context, date, timeSlot string, capacity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time_slot": timeSlot}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":             uuid.New().String(),
			"date":           date,
			"time_slot":      timeSlot,
			"total_capacity": capacity,
			"booked_count":   0,
			"blocked":        false,
			"updated_at":     time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to ensure timeslot %s %s: %w", date, timeSlot, err)
	}
	return nil
}

func (r *mongoTimeSlotRepo) SetBlocked(ctx context.Context, date, timeSlot string, blocked bool, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time_slot": timeSlot}
	update := bson.M{
		"$set": bson.M{
			"blocked":      blocked,
			"block_reason": reason,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set block state for timeslot: %w", err)
	}
	return nil
}
