package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeProcessor implements Processor over Stripe payment intents.
type StripeProcessor struct {
	logger *zap.Logger
}

// NewStripeProcessor creates the processor. stripe.Key must already be set.
func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{logger: logger}
}

func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, amount float64, currency, customerRef, bookingID string) (string, error) {
	if amount <= 0 {
		return "", errors.New("invalid payment amount")
	}
	if customerRef == "" {
		return "", errors.New("missing customer payment profile")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(currency),
		Customer: stripe.String(customerRef),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe payment intent failed: %w", err)
	}

	p.logger.Info("payment intent created",
		zap.String("bookingID", bookingID), zap.String("intentID", pi.ID))
	return pi.ID, nil
}
