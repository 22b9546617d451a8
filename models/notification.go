package models

// ReminderPayload is the asynq task body for a scheduled booking reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	CleanerID string `json:"cleanerId"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
