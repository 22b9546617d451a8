package payment

import "context"

// Processor is the external payment capability. The engine calls it
// best-effort after a booking is persisted: a failure is logged and the
// booking stands without a payment intent.
type Processor interface {
	CreatePaymentIntent(ctx context.Context, amount float64, currency, customerRef, bookingID string) (string, error)
}
