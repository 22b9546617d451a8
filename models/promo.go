package models

import "time"

// DiscountType distinguishes percentage from fixed-amount promos.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode is an admin-managed discount code. Code is stored uppercased and
// looked up case-insensitively. UsageCount is an aggregate mirror of the
// usage ledger, incremented once per applied booking.
type PromoCode struct {
	ID                    string       `bson:"id" json:"id"`
	Code                  string       `bson:"code" json:"code"`
	Description           string       `bson:"description,omitempty" json:"description,omitempty"`
	DiscountType          DiscountType `bson:"discount_type" json:"discount_type"`
	DiscountValue         float64      `bson:"discount_value" json:"discount_value"`
	MinimumOrderAmount    *float64     `bson:"minimum_order_amount,omitempty" json:"minimum_order_amount,omitempty"`
	MaximumDiscountAmount *float64     `bson:"maximum_discount_amount,omitempty" json:"maximum_discount_amount,omitempty"`
	UsageLimit            *int         `bson:"usage_limit,omitempty" json:"usage_limit,omitempty"`
	UsageLimitPerCustomer *int         `bson:"usage_limit_per_customer,omitempty" json:"usage_limit_per_customer,omitempty"`
	ValidFrom             *time.Time   `bson:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidUntil            *time.Time   `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	Active                bool         `bson:"active" json:"active"`
	UsageCount            int          `bson:"usage_count" json:"usage_count"`
	ApplicableServiceIDs  []string     `bson:"applicable_service_ids,omitempty" json:"applicable_service_ids,omitempty"`
	AllowedCustomerIDs    []string     `bson:"allowed_customer_ids,omitempty" json:"allowed_customer_ids,omitempty"`
	CreatedAt             time.Time    `bson:"created_at" json:"created_at"`
}

// PromoCodeUsage is one append-only redemption record. Per-customer limits
// are enforced by counting these, never by mutating the promo itself.
type PromoCodeUsage struct {
	ID             string    `bson:"id" json:"id"`
	PromoID        string    `bson:"promo_id" json:"promo_id"`
	Code           string    `bson:"code" json:"code"`
	CustomerID     string    `bson:"customer_id" json:"customer_id"`
	BookingID      string    `bson:"booking_id" json:"booking_id"`
	DiscountAmount float64   `bson:"discount_amount" json:"discount_amount"`
	UsedAt         time.Time `bson:"used_at" json:"used_at"`
}
