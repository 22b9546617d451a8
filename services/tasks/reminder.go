package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"maidly/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task that fires a booking reminder at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
