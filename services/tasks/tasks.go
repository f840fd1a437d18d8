// File: services/tasks/tasks.go
// Package tasks defines the asynq task types the background worker consumes.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeSlotCleanup prunes unbooked availability slots whose time passed.
	TypeSlotCleanup = "slots:cleanup"
	// TypeAppointmentSweep persists expiry and completion transitions.
	TypeAppointmentSweep = "appointments:sweep"
	// TypeCycleReminder mails a patient ahead of their predicted period.
	TypeCycleReminder = "cycle:reminder"
)

// CycleReminderPayload identifies the patient and the predicted date.
type CycleReminderPayload struct {
	UserID        string `json:"userId"`
	PredictedDate string `json:"predictedDate"`
}

// NewSlotCleanupTask builds the periodic slot-pruning task.
func NewSlotCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeSlotCleanup, nil)
}

// NewAppointmentSweepTask builds the periodic lifecycle-sweep task.
func NewAppointmentSweepTask() *asynq.Task {
	return asynq.NewTask(TypeAppointmentSweep, nil)
}

// NewCycleReminderTask schedules a reminder to fire at the given instant.
func NewCycleReminderTask(payload CycleReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCycleReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}
