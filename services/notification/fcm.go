package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"maidly/models"
	"maidly/utils"
)

// DefaultNotificationService sends FCM pushes to cleaners' devices.
type DefaultNotificationService struct{}

// NewDefaultNotificationService constructs the FCM-backed implementation.
func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{}
}

func (s *DefaultNotificationService) NotifyCleanerAssigned(ctx context.Context, cleaner *models.Cleaner, booking *models.Booking) error {
	title := "New job assigned"
	body := fmt.Sprintf("Cleaning on %s, %s", booking.Date, booking.TimeSlot)
	return s.SendCleanerPush(ctx, cleaner, title, body, map[string]string{
		"bookingId": booking.ID,
		"date":      booking.Date,
		"timeSlot":  booking.TimeSlot,
		"type":      "assignment",
	})
}

func (s *DefaultNotificationService) NotifyJobCompleted(ctx context.Context, cleaner *models.Cleaner, booking *models.Booking) error {
	title := "Job completed"
	body := fmt.Sprintf("Booking %s is marked completed", booking.ID)
	return s.SendCleanerPush(ctx, cleaner, title, body, map[string]string{
		"bookingId": booking.ID,
		"type":      "completion",
	})
}

// SendCleanerPush looks up the cleaner's FCM token and sends a push.
func (s *DefaultNotificationService) SendCleanerPush(ctx context.Context, cleaner *models.Cleaner, title, body string, data map[string]string) error {
	if cleaner.FCMToken == "" {
		return fmt.Errorf("cleaner %s has no FCM token", cleaner.ID)
	}

	msg := &messaging.Message{
		Token: cleaner.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message to cleaner %s: %w", cleaner.ID, err)
	}
	return nil
}
