package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"maidly/models"
	"maidly/utils"
)

// ClockIn moves a confirmed booking to in_progress. The transition guard is
// mandatory: clocking in from any other state corrupts the job timeline.
func (e *DefaultEngine) ClockIn(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewBookingError(CodeBookingNotFound, fmt.Sprintf("Booking %s not found", bookingID))
	}

	now := time.Now()
	ok, err := e.Bookings.ClockIn(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewBookingError(CodeInvalidStateTransition,
			fmt.Sprintf("Cannot clock in: booking is %s, not confirmed", booking.Status))
	}

	booking.Status = models.BookingStatusInProgress
	booking.ClockInAt = &now
	return booking, nil
}

// ClockOut moves an in_progress booking to completed, bumps the cleaner's
// job counter, and emits the completion notification.
func (e *DefaultEngine) ClockOut(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewBookingError(CodeBookingNotFound, fmt.Sprintf("Booking %s not found", bookingID))
	}

	now := time.Now()
	ok, err := e.Bookings.ClockOut(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewBookingError(CodeInvalidStateTransition,
			fmt.Sprintf("Cannot clock out: booking is %s, not in progress", booking.Status))
	}

	booking.Status = models.BookingStatusCompleted
	booking.ClockOutAt = &now

	if booking.CleanerID != "" {
		if err := e.Cleaners.IncrementJobs(ctx, booking.CleanerID); err != nil {
			logger.Error("failed to increment cleaner job counter",
				zap.String("cleanerID", booking.CleanerID), zap.Error(err))
		}
		if e.Notifier != nil {
			cleaner, err := e.Cleaners.GetByID(ctx, booking.CleanerID)
			if err == nil && cleaner != nil {
				if err := e.Notifier.NotifyJobCompleted(ctx, cleaner, booking); err != nil {
					logger.Warn("completion notification failed",
						zap.String("bookingID", booking.ID), zap.Error(err))
				}
			}
		}
	}
	return booking, nil
}

// CancelBooking soft-cancels from pending or confirmed and gives the slot
// unit back. The guarded transition fires at most once, so capacity is
// released exactly once per booking.
func (e *DefaultEngine) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewBookingError(CodeBookingNotFound, fmt.Sprintf("Booking %s not found", bookingID))
	}

	now := time.Now()
	ok, err := e.Bookings.Cancel(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewBookingError(CodeInvalidStateTransition,
			fmt.Sprintf("Cannot cancel: booking is %s", booking.Status))
	}

	if err := e.Slots.Release(ctx, booking.Date, booking.TimeSlot); err != nil {
		logger.Error("failed to release slot capacity on cancellation",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now
	return booking, nil
}
