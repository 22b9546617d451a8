// File: database/repository/cleaner/crud.go
package cleanerRepo

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

func (r *mongoCleanerRepo) Create(ctx context.Context, cleaner *models.Cleaner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cleaner.ID == "" {
		cleaner.ID = uuid.New().String()
	}
	now := time.Now()
	cleaner.CreatedAt = now
	cleaner.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, cleaner); err != nil {
		return fmt.Errorf("failed to insert cleaner: %w", err)
	}
	return nil
}

func (r *mongoCleanerRepo) GetByID(ctx context.Context, id string) (*models.Cleaner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cleaner models.Cleaner
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cleaner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaner %s: %w", id, err)
	}
	return &cleaner, nil
}

func (r *mongoCleanerRepo) Update(ctx context.Context, cleaner *models.Cleaner) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cleaner.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": cleaner.ID}, cleaner)
	if err != nil {
		return fmt.Errorf("failed to update cleaner %s: %w", cleaner.ID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoCleanerRepo) ListActive(ctx context.Context) ([]models.Cleaner, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cleaners: %w", err)
	}
	defer cursor.Close(ctx)

	var cleaners []models.Cleaner
	if err := cursor.All(ctx, &cleaners); err != nil {
		return nil, err
	}
	return cleaners, nil
}

// IncrementJobs bumps the completed-jobs counter by one.
func (r *mongoCleanerRepo) IncrementJobs(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"total_jobs": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to increment jobs for cleaner %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the cleaners collection.
func (r *mongoCleanerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "active", Value: 1}},
			Options: options.Index().SetName("active_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create cleaner indexes: %w", err)
	}
	return nil
}
