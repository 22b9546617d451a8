// File: database/repository/timeslot/capacity.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Reserve takes one unit of capacity for (date, timeSlot) with a single
// conditional update. The $expr guard makes the increment and the capacity
// check one atomic operation, so two concurrent reservations of the last
// open unit can never both succeed.
func (r *mongoTimeSlotRepo) Reserve(ctx context.Context, date, timeSlot string, capacity int) error {
	if err := r.EnsureSlot(ctx, date, timeSlot, capacity); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":      date,
		"time_slot": timeSlot,
		"blocked":   false,
		"$expr":     bson.M{"$lt": bson.A{"$booked_count", "$total_capacity"}},
	}
	update := bson.M{
		"$inc": bson.M{"booked_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve timeslot %s %s: %w", date, timeSlot, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotFull
	}
	return nil
}

// Release gives back one unit, guarded so the count never drops below zero.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, date, timeSlot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":         date,
		"time_slot":    timeSlot,
		"booked_count": bson.M{"$gt": 0},
	}
	update := bson.M{
		"$inc": bson.M{"booked_count": -1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release timeslot %s %s: %w", date, timeSlot, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("release matched no timeslot for %s %s", date, timeSlot)
	}
	return nil
}
