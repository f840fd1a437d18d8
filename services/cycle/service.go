// File: services/cycle/service.go
package cycle

import (
	"context"
	"fmt"
	"math"
	"time"

	"femicare/models"
	"femicare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogCycle validates and stores a cycle entry, computing BMI and the
// predicted dates before the write. Prediction failures never block the log;
// the reported cycle length stands in for the model's estimate.
func (s *DefaultCycleService) LogCycle(ctx context.Context, userID string, input models.CycleLogInput) (*models.CycleLog, error) {
	logger := utils.GetLogger()

	start, err := time.Parse(models.DateLayout, input.LastPeriodStart)
	if err != nil {
		return nil, fmt.Errorf("invalid lastPeriodStart, expected YYYY-MM-DD: %w", err)
	}
	if input.CycleLength < 15 || input.CycleLength > 60 {
		return nil, fmt.Errorf("cycle length must be between 15 and 60 days")
	}
	if input.MensesLength < 1 || input.MensesLength > 15 {
		return nil, fmt.Errorf("menses length must be between 1 and 15 days")
	}
	if input.BleedingIntensity < models.BleedingLight || input.BleedingIntensity > models.BleedingHeavy {
		return nil, fmt.Errorf("bleeding intensity must be between %d and %d", models.BleedingLight, models.BleedingHeavy)
	}
	if input.HeightCm <= 0 || input.WeightKg <= 0 {
		return nil, fmt.Errorf("height and weight must be positive")
	}

	now := s.now()
	bmi := computeBMI(input.WeightKg, input.HeightCm)

	entry := &models.CycleLog{
		ID:                uuid.New().String(),
		UserID:            userID,
		LogDate:           now.Format(models.DateLayout),
		LastPeriodStart:   input.LastPeriodStart,
		CycleLength:       input.CycleLength,
		MensesLength:      input.MensesLength,
		MeanMensesLength:  input.MeanMensesLength,
		BleedingIntensity: input.BleedingIntensity,
		UnusualBleeding:   input.UnusualBleeding,
		MensesScore:       input.MensesScore,
		HeightCm:          input.HeightCm,
		WeightKg:          input.WeightKg,
		BMI:               bmi,
		CreatedAt:         now,
	}

	predicted := float64(input.CycleLength)
	if s.Predictor != nil {
		p, perr := s.Predictor.PredictCycleLength(ctx, FeatureVector(entry))
		if perr != nil {
			logger.Warn("cycle prediction unavailable, falling back to reported length",
				zap.String("userId", userID), zap.Error(perr))
		} else if p > 0 {
			predicted = p
		}
	}

	next := start.AddDate(0, 0, int(math.Round(predicted)))
	ovulation := next.AddDate(0, 0, -14)
	entry.PredictedNextPeriod = next.Format(models.DateLayout)
	entry.EstimatedOvulationDay = ovulation.Format(models.DateLayout)
	entry.FertileWindowStart = ovulation.AddDate(0, 0, -5).Format(models.DateLayout)
	entry.FertileWindowEnd = ovulation.AddDate(0, 0, 1).Format(models.DateLayout)

	if err := s.Logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save cycle log: %w", err)
	}
	logger.Info("cycle log recorded",
		zap.String("userId", userID),
		zap.String("predictedNextPeriod", entry.PredictedNextPeriod))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleCycleReminder(userID, entry.PredictedNextPeriod); err != nil {
			logger.Warn("failed to schedule cycle reminder",
				zap.String("userId", userID), zap.Error(err))
		}
	}
	return entry, nil
}

// History returns the user's logs, newest first.
func (s *DefaultCycleService) History(ctx context.Context, userID string, limit int) ([]models.CycleLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Logs.ListByUser(ctx, userID, limit)
}

// Prefill carries stable fields forward from the latest log so the client can
// pre-populate the entry form.
func (s *DefaultCycleService) Prefill(ctx context.Context, userID string) (*models.CyclePrefill, error) {
	latest, err := s.Logs.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &models.CyclePrefill{}, nil
	}
	return &models.CyclePrefill{
		HeightCm:         latest.HeightCm,
		WeightKg:         latest.WeightKg,
		MeanMensesLength: latest.MeanMensesLength,
		CycleLength:      latest.CycleLength,
	}, nil
}

// FeatureVector flattens a log into the model input order the prediction
// server was trained on.
func FeatureVector(log *models.CycleLog) []float64 {
	unusual := 0.0
	if log.UnusualBleeding {
		unusual = 1.0
	}
	return []float64{
		float64(log.CycleLength),
		float64(log.MensesLength),
		float64(log.MeanMensesLength),
		float64(log.MensesScore),
		float64(log.BleedingIntensity),
		unusual,
		log.BMI,
	}
}

func computeBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}
