// File: database/repository/promo/interface.go
package promoRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"maidly/database"
	"maidly/models"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *models.PromoCode) error
	// GetByCode performs the case-insensitive lookup (codes are stored uppercased).
	GetByCode(ctx context.Context, code string) (*models.PromoCode, error)
	SetActive(ctx context.Context, id string, active bool) error
	IncrementUsage(ctx context.Context, id string) error
	CountUsageByCustomer(ctx context.Context, promoID, customerID string) (int64, error)
	RecordUsage(ctx context.Context, usage *models.PromoCodeUsage) error
	ListUsage(ctx context.Context, promoID string) ([]models.PromoCodeUsage, error)
	EnsureIndexes() error
}

type mongoPromoRepo struct {
	coll      *mongo.Collection
	usageColl *mongo.Collection
}

// NewMongoPromoRepo constructs a new MongoDB PromoRepository backed by the
// promo catalog and the append-only usage ledger.
func NewMongoPromoRepo() PromoRepository {
	db := database.DB()
	return &mongoPromoRepo{
		coll:      db.Collection("promo_codes"),
		usageColl: db.Collection("promo_code_usage"),
	}
}
