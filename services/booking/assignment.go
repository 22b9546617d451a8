package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"maidly/models"
	"maidly/services/calendar"
	"maidly/services/tasks"
	"maidly/utils"
)

// AssignCleaner puts a booking on a cleaner's calendar. The calendar write is
// best-effort: on failure the assignment proceeds under a locally generated
// fallback event id (the FallbackEventID strategy) rather than failing.
func (e *DefaultEngine) AssignCleaner(ctx context.Context, in models.AssignmentInput) (*models.AssignmentResult, error) {
	logger := utils.GetLogger()

	booking, err := e.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, NewBookingError(CodeBookingNotFound, fmt.Sprintf("Booking %s not found", in.BookingID))
	}

	cleaner, err := e.Cleaners.GetByID(ctx, in.CleanerID)
	if err != nil {
		return nil, err
	}
	if cleaner == nil {
		return nil, NewBookingError(CodeCleanerNotFound, fmt.Sprintf("Cleaner %s not found", in.CleanerID))
	}

	if cleaner.CalendarIntegration {
		busy, err := e.Availability.CheckCleanerConflict(ctx, cleaner, in.StartTime, in.EndTime, booking.Date, booking.TimeSlot)
		if err != nil {
			return nil, fmt.Errorf("cleaner conflict check failed: %w", err)
		}
		if busy {
			return nil, NewBookingError(CodeCleanerUnavailable,
				fmt.Sprintf("Cleaner %s %s is not available for the requested time", cleaner.FirstName, cleaner.LastName))
		}
	}

	eventID, fallback := e.createCalendarEvent(ctx, cleaner, booking, in)

	ok, err := e.Bookings.SetAssignment(ctx, booking.ID, cleaner.ID, eventID, in.Notes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewBookingError(CodeInvalidStateTransition,
			fmt.Sprintf("Booking %s cannot be assigned in its current state", booking.ID))
	}

	booking.CleanerID = cleaner.ID
	booking.CalendarEventID = eventID
	booking.Status = models.BookingStatusConfirmed
	booking.AssignmentNotes = in.Notes

	if e.Notifier != nil {
		if err := e.Notifier.NotifyCleanerAssigned(ctx, cleaner, booking); err != nil {
			logger.Warn("assignment notification failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	e.scheduleReminder(booking, cleaner)

	return &models.AssignmentResult{
		BookingID:       booking.ID,
		CleanerID:       cleaner.ID,
		CalendarEventID: eventID,
		FallbackEventID: fallback,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Notes:           in.Notes,
	}, nil
}

func (e *DefaultEngine) createCalendarEvent(ctx context.Context, cleaner *models.Cleaner, booking *models.Booking, in models.AssignmentInput) (eventID string, fallback bool) {
	logger := utils.GetLogger()

	if e.Calendar != nil && cleaner.CalendarIntegration && cleaner.CalendarRef != "" {
		id, err := e.Calendar.CreateEvent(ctx, cleaner.CalendarRef, calendar.Event{
			Summary:     fmt.Sprintf("Cleaning job %s", booking.ID),
			Description: fmt.Sprintf("%s, %s (%s)", booking.Date, booking.TimeSlot, booking.Address),
			Start:       in.StartTime,
			End:         in.EndTime,
		})
		if err == nil {
			return id, false
		}
		logger.Warn("calendar event creation failed, proceeding with fallback id",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	return "local-" + uuid.New().String(), true
}

// scheduleReminder queues a day-before push for the assigned cleaner.
func (e *DefaultEngine) scheduleReminder(booking *models.Booking, cleaner *models.Cleaner) {
	if e.TaskClient == nil {
		return
	}
	logger := utils.GetLogger()

	day, err := time.ParseInLocation(utils.DateLayout, booking.Date, time.Local)
	if err != nil {
		logger.Warn("unparseable booking date, skipping reminder",
			zap.String("bookingID", booking.ID), zap.String("date", booking.Date))
		return
	}
	fireAt := day.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		CleanerID: cleaner.ID,
		Date:      booking.Date,
		TimeSlot:  booking.TimeSlot,
		Title:     "Upcoming cleaning job",
		Body:      fmt.Sprintf("You have a job tomorrow, %s", booking.TimeSlot),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		logger.Warn("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := e.TaskClient.Enqueue(task, opts...); err != nil {
		logger.Warn("failed to enqueue reminder task",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}
