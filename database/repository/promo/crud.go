// File: database/repository/promo/crud.go
package promoRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"maidly/models"
)

func (r *mongoPromoRepo) Create(ctx context.Context, promo *models.PromoCode) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	promo.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, promo); err != nil {
		return fmt.Errorf("failed to insert promo code: %w", err)
	}
	return nil
}

func (r *mongoPromoRepo) GetByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}
	var promo models.PromoCode
	err := r.coll.FindOne(ctx, filter).Decode(&promo)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch promo code: %w", err)
	}
	return &promo, nil
}

func (r *mongoPromoRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return fmt.Errorf("failed to set promo active flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementUsage bumps the aggregate counter by exactly one. Called only when
// a booking is actually created with the code.
func (r *mongoPromoRepo) IncrementUsage(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"usage_count": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoPromoRepo) CountUsageByCustomer(ctx context.Context, promoID, customerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"promo_id": promoID, "customer_id": customerID}
	count, err := r.usageColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count promo usage: %w", err)
	}
	return count, nil
}

func (r *mongoPromoRepo) RecordUsage(ctx context.Context, usage *models.PromoCodeUsage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if usage.ID == "" {
		usage.ID = uuid.New().String()
	}
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}

	if _, err := r.usageColl.InsertOne(ctx, usage); err != nil {
		return fmt.Errorf("failed to record promo usage: %w", err)
	}
	return nil
}

func (r *mongoPromoRepo) ListUsage(ctx context.Context, promoID string) ([]models.PromoCodeUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.usageColl.Find(ctx, bson.M{"promo_id": promoID},
		options.Find().SetSort(bson.D{{Key: "used_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list promo usage: %w", err)
	}
	defer cursor.Close(ctx)

	var usages []models.PromoCodeUsage
	if err := cursor.All(ctx, &usages); err != nil {
		return nil, err
	}
	return usages, nil
}

// EnsureIndexes creates the necessary indexes on both promo collections.
func (r *mongoPromoRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_code"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create promo indexes: %w", err)
	}

	_, err = r.usageColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "promo_id", Value: 1}, {Key: "customer_id", Value: 1}},
			Options: options.Index().SetName("promo_customer_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create promo usage indexes: %w", err)
	}
	return nil
}
