package booking

import (
	"context"

	"github.com/hibiken/asynq"

	bookingRepo "maidly/database/repository/booking"
	cleanerRepo "maidly/database/repository/cleaner"
	serviceRepo "maidly/database/repository/service"
	timeslotRepo "maidly/database/repository/timeslot"
	"maidly/models"
	"maidly/services/availability"
	"maidly/services/calendar"
	"maidly/services/notification"
	"maidly/services/payment"
	"maidly/services/pricing"
	"maidly/services/promo"
)

// Engine is the booking orchestration surface consumed by the HTTP layer.
// All inputs and outputs are plain data.
type Engine interface {
	Quote(ctx context.Context, in models.QuoteInput) (*models.Quote, error)
	CreateBooking(ctx context.Context, in models.CreateBookingInput) (*models.Booking, error)
	AssignCleaner(ctx context.Context, in models.AssignmentInput) (*models.AssignmentResult, error)
	ClockIn(ctx context.Context, bookingID string) (*models.Booking, error)
	ClockOut(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultEngine implements Engine.
type DefaultEngine struct {
	Bookings     bookingRepo.BookingRepository
	Cleaners     cleanerRepo.CleanerRepository
	Services     serviceRepo.ServiceRepository
	Slots        timeslotRepo.TimeSlotRepository
	Availability *availability.Service
	Pricing      *pricing.Calculator
	Promo        *promo.Validator
	Calendar     calendar.Port
	Payments     payment.Processor
	Notifier     notification.NotificationService
	TaskClient   *asynq.Client

	ServiceAreaZips     []string
	DefaultSlotCapacity int
}

func (e *DefaultEngine) inServiceArea(zip string) bool {
	for _, z := range e.ServiceAreaZips {
		if z == zip {
			return true
		}
	}
	return false
}
