package promo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	promoRepo "maidly/database/repository/promo"
	"maidly/models"
	"maidly/utils"
)

// Result is the outcome of a promo validation. When Valid is false, Message
// carries the user-facing, rule-specific reason.
type Result struct {
	Valid       bool              `json:"valid"`
	Message     string            `json:"message,omitempty"`
	Promo       *models.PromoCode `json:"promo,omitempty"`
	Discount    float64           `json:"discount"`
	FinalAmount float64           `json:"final_amount"`
}

// Validator decides whether a promo code applies to an order and computes
// the discount. Validate never mutates state; Apply records the redemption.
type Validator struct {
	Repo promoRepo.PromoRepository
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewValidator creates a Validator over the promo repository.
func NewValidator(repo promoRepo.PromoRepository) *Validator {
	return &Validator{Repo: repo, Now: time.Now}
}

// Validate runs the eligibility chain in a fixed order, short-circuiting on
// the first failing rule so earlier rules are never masked by later messages.
func (v *Validator) Validate(ctx context.Context, code, customerID string, subtotal float64) (Result, error) {
	if strings.TrimSpace(code) == "" {
		return invalid("Please enter a promo code"), nil
	}

	promo, err := v.Repo.GetByCode(ctx, code)
	if err != nil {
		return Result{}, fmt.Errorf("promo lookup failed: %w", err)
	}
	if promo == nil {
		return invalid("Invalid promo code"), nil
	}

	if !promo.Active {
		return invalid("This promo code is no longer active"), nil
	}

	now := v.now()
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return invalid("This promo code is not valid yet"), nil
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return invalid("This promo code has expired"), nil
	}

	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return invalid("This promo code has reached its usage limit"), nil
	}

	perCustomerLimit := 1
	if promo.UsageLimitPerCustomer != nil {
		perCustomerLimit = *promo.UsageLimitPerCustomer
	}
	used, err := v.Repo.CountUsageByCustomer(ctx, promo.ID, customerID)
	if err != nil {
		return Result{}, fmt.Errorf("promo usage count failed: %w", err)
	}
	if used >= int64(perCustomerLimit) {
		return invalid("You have already used this promo code"), nil
	}

	if promo.MinimumOrderAmount != nil && subtotal < *promo.MinimumOrderAmount {
		return invalid(fmt.Sprintf("A minimum order of $%.2f is required for this promo code", *promo.MinimumOrderAmount)), nil
	}

	if len(promo.AllowedCustomerIDs) > 0 && !contains(promo.AllowedCustomerIDs, customerID) {
		return invalid("This promo code is not available for your account"), nil
	}

	discount := v.ComputeDiscount(promo, subtotal)
	return Result{
		Valid:       true,
		Promo:       promo,
		Discount:    discount,
		FinalAmount: roundCents(subtotal - discount),
	}, nil
}

// ComputeDiscount applies the promo's discount rule to the subtotal, clamped
// first to the promo's cap and then to the subtotal itself, rounded to cents.
func (v *Validator) ComputeDiscount(promo *models.PromoCode, subtotal float64) float64 {
	var discount float64
	switch promo.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal * promo.DiscountValue / 100
	case models.DiscountTypeFixed:
		discount = promo.DiscountValue
	}
	if promo.MaximumDiscountAmount != nil && discount > *promo.MaximumDiscountAmount {
		discount = *promo.MaximumDiscountAmount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return roundCents(discount)
}

// Apply records the redemption side effects for a created booking: one ledger
// append plus a single aggregate increment. Never called from validation-only
// paths.
func (v *Validator) Apply(ctx context.Context, promo *models.PromoCode, customerID, bookingID string, discount float64) error {
	usage := &models.PromoCodeUsage{
		PromoID:        promo.ID,
		Code:           promo.Code,
		CustomerID:     customerID,
		BookingID:      bookingID,
		DiscountAmount: discount,
		UsedAt:         v.now(),
	}
	if err := v.Repo.RecordUsage(ctx, usage); err != nil {
		return fmt.Errorf("failed to append promo usage: %w", err)
	}
	if err := v.Repo.IncrementUsage(ctx, promo.ID); err != nil {
		// The ledger entry is the source of truth for per-customer limits;
		// log the aggregate drift rather than failing the booking.
		utils.GetLogger().Error("promo usage_count increment failed",
			zap.String("promoID", promo.ID), zap.Error(err))
	}
	return nil
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func invalid(msg string) Result {
	return Result{Valid: false, Message: msg}
}

func contains(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
