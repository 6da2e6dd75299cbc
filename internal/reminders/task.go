// Package reminders schedules and delivers the daily "keep your streak" e-mails.
package reminders

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeReminderEmail is the asynq task type of a reminder e-mail
	TypeReminderEmail = "reminder:email"

	// QueueName is the queue reminder tasks are enqueued on
	QueueName = "default"

	maxRetry = 3
)

// ReminderPayload is the body of a reminder task
type ReminderPayload struct {
	OwnerID     string `json:"ownerId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Streak      int    `json:"streak"`
	Day         string `json:"day"`
}

// NewReminderTask encodes payload into an asynq task
func NewReminderTask(payload ReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reminder payload: %w", err)
	}
	return asynq.NewTask(TypeReminderEmail, data, asynq.MaxRetry(maxRetry), asynq.Timeout(time.Minute)), nil
}

// ParseReminderTask decodes the payload of a reminder task
func ParseReminderTask(t *asynq.Task) (ReminderPayload, error) {
	var payload ReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return ReminderPayload{}, fmt.Errorf("failed to decode reminder payload: %w", err)
	}
	if payload.Email == "" {
		return ReminderPayload{}, fmt.Errorf("reminder payload has no email")
	}
	return payload, nil
}
