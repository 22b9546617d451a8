package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	timeslotRepo "maidly/database/repository/timeslot"
	"maidly/models"
	"maidly/utils"
)

// CreateBooking runs the full booking-creation flow: service area, schedule,
// capacity, pricing, promo, persistence, capacity reservation, then
// best-effort payment-intent creation. Validation failures return a typed
// BookingError; a down payment gateway never blocks scheduling.
func (e *DefaultEngine) CreateBooking(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	// Replaying a request with a known idempotency key returns the original
	// booking with no second promo append or capacity decrement.
	if in.IdempotencyKey != "" {
		existing, err := e.Bookings.GetByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency lookup failed: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	zip := strings.TrimSpace(in.ZipCode)
	if zip == "" || !e.inServiceArea(zip) {
		return nil, NewBookingError(CodeOutOfServiceArea,
			fmt.Sprintf("We do not currently service the %s area", zip))
	}

	if strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.TimeSlot) == "" {
		return nil, NewBookingError(CodeMissingSchedule, "A booking date and time slot are required")
	}

	open, err := e.Availability.HasSlotCapacity(ctx, in.Date, in.TimeSlot)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}
	if !open {
		return nil, NewBookingError(CodeSlotUnavailable,
			fmt.Sprintf("The %s slot on %s is fully booked", in.TimeSlot, in.Date))
	}

	quote, appliedPromo, err := e.buildQuote(ctx, models.QuoteInput{
		CustomerID: in.CustomerID,
		HouseSize:  in.HouseSize,
		Frequency:  in.Frequency,
		Rooms:      in.Rooms,
		ALaCarte:   in.ALaCarte,
		PromoCode:  in.PromoCode,
	})
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		GuestEmail:     in.GuestEmail,
		HouseSize:      in.HouseSize,
		Frequency:      in.Frequency,
		Rooms:          in.Rooms,
		Services:       in.Services,
		ALaCarte:       quote.ALaCarteItems,
		Date:           in.Date,
		TimeSlot:       in.TimeSlot,
		ZipCode:        zip,
		Address:        in.Address,
		BasePrice:      quote.BasePrice,
		RoomPrice:      quote.RoomPrice,
		ALaCarteTotal:  quote.ALaCarteTotal,
		DiscountAmount: quote.DiscountAmount,
		TotalAmount:    quote.TotalAmount,
		PromoCode:      quote.PromoCode,
		Status:         models.BookingStatusPending,
		PaymentStatus:  models.PaymentStatusUnpaid,
		EstimatedHours: quote.EstimatedHours,
		IdempotencyKey: in.IdempotencyKey,
	}

	// The guarded reservation is the authoritative capacity check: of two
	// concurrent requests for the last unit, exactly one passes. Capacity is
	// taken before the insert; a failed insert gives the unit back.
	if err := e.Slots.Reserve(ctx, in.Date, in.TimeSlot, e.DefaultSlotCapacity); err != nil {
		if err == timeslotRepo.ErrSlotFull {
			return nil, NewBookingError(CodeSlotUnavailable,
				fmt.Sprintf("The %s slot on %s is fully booked", in.TimeSlot, in.Date))
		}
		return nil, fmt.Errorf("slot reservation failed: %w", err)
	}

	if err := e.Bookings.Create(ctx, booking); err != nil {
		if relErr := e.Slots.Release(ctx, in.Date, in.TimeSlot); relErr != nil {
			logger.Error("failed to release slot after booking insert failure",
				zap.String("date", in.Date), zap.String("timeSlot", in.TimeSlot), zap.Error(relErr))
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if appliedPromo != nil {
		if err := e.Promo.Apply(ctx, appliedPromo, in.CustomerID, booking.ID, booking.DiscountAmount); err != nil {
			logger.Error("promo application side effects failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	e.createPaymentIntent(ctx, booking, in.PaymentProfile)

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("date", booking.Date),
		zap.String("timeSlot", booking.TimeSlot),
		zap.Float64("total", booking.TotalAmount))
	return booking, nil
}

// createPaymentIntent is best-effort: the booking stands even when the
// payment processor is down or the customer has no payment profile.
func (e *DefaultEngine) createPaymentIntent(ctx context.Context, booking *models.Booking, paymentProfile string) {
	if e.Payments == nil || paymentProfile == "" {
		return
	}
	logger := utils.GetLogger()

	intentID, err := e.Payments.CreatePaymentIntent(ctx, booking.TotalAmount, "usd", paymentProfile, booking.ID)
	if err != nil {
		logger.Warn("payment intent creation failed, booking stands without it",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}

	booking.PaymentIntentID = intentID
	booking.PaymentStatus = models.PaymentStatusIntentCreated
	if err := e.Bookings.Update(ctx, booking); err != nil {
		logger.Error("failed to store payment intent on booking",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
