// File: database/repository/cleaner/interface.go
package cleanerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"maidly/database"
	"maidly/models"
)

type CleanerRepository interface {
	Create(ctx context.Context, cleaner *models.Cleaner) error
	GetByID(ctx context.Context, id string) (*models.Cleaner, error)
	Update(ctx context.Context, cleaner *models.Cleaner) error
	ListActive(ctx context.Context) ([]models.Cleaner, error)
	IncrementJobs(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoCleanerRepo struct {
	coll *mongo.Collection
}

// NewMongoCleanerRepo constructs a new MongoDB CleanerRepository.
func NewMongoCleanerRepo() CleanerRepository {
	return &mongoCleanerRepo{
		coll: database.DB().Collection("cleaners"),
	}
}
