package notification

import (
	"context"

	"maidly/models"
)

// NotificationService emits booking lifecycle notifications. The engine only
// hands over well-formed payloads; delivery is this collaborator's problem
// and failures never abort a booking flow.
type NotificationService interface {
	NotifyCleanerAssigned(ctx context.Context, cleaner *models.Cleaner, booking *models.Booking) error
	NotifyJobCompleted(ctx context.Context, cleaner *models.Cleaner, booking *models.Booking) error
	SendCleanerPush(ctx context.Context, cleaner *models.Cleaner, title, body string, data map[string]string) error
}
