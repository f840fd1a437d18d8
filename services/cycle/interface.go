// File: services/cycle/interface.go
package cycle

import (
	"context"
	"time"

	"femicare/models"
)

// Service records cycle logs and attaches model-backed predictions.
type Service interface {
	LogCycle(ctx context.Context, userID string, input models.CycleLogInput) (*models.CycleLog, error)
	History(ctx context.Context, userID string, limit int) ([]models.CycleLog, error)
	Prefill(ctx context.Context, userID string) (*models.CyclePrefill, error)
}

// CycleStore is the persistence surface the service needs.
type CycleStore interface {
	Create(ctx context.Context, log *models.CycleLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CycleLog, error)
	Latest(ctx context.Context, userID string) (*models.CycleLog, error)
}

// Predictor estimates the next cycle length in days from the feature vector.
// Implementations that cannot produce an estimate return an error and the
// service falls back to the user's reported cycle length.
type Predictor interface {
	PredictCycleLength(ctx context.Context, features []float64) (float64, error)
}

// ReminderScheduler queues a period reminder for later delivery.
type ReminderScheduler interface {
	ScheduleCycleReminder(userID, predictedDate string) error
}

// DefaultCycleService is the production implementation.
type DefaultCycleService struct {
	Logs      CycleStore
	Predictor Predictor
	Reminders ReminderScheduler
	Now       func() time.Time
}

func (s *DefaultCycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
