package cycle

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"femicare/models"
)

type fakeLogs struct {
	entries []models.CycleLog
	created *models.CycleLog
}

func (f *fakeLogs) Create(ctx context.Context, log *models.CycleLog) error {
	f.created = log
	f.entries = append([]models.CycleLog{*log}, f.entries...)
	return nil
}

func (f *fakeLogs) ListByUser(ctx context.Context, userID string, limit int) ([]models.CycleLog, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func (f *fakeLogs) Latest(ctx context.Context, userID string) (*models.CycleLog, error) {
	if len(f.entries) == 0 {
		return nil, nil
	}
	cp := f.entries[0]
	return &cp, nil
}

type fakePredictor struct {
	prediction float64
	err        error
	features   []float64
}

func (f *fakePredictor) PredictCycleLength(ctx context.Context, features []float64) (float64, error) {
	f.features = features
	return f.prediction, f.err
}

type fakeReminders struct {
	userID        string
	predictedDate string
	err           error
}

func (f *fakeReminders) ScheduleCycleReminder(userID, predictedDate string) error {
	f.userID = userID
	f.predictedDate = predictedDate
	return f.err
}

var logNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func validInput() models.CycleLogInput {
	return models.CycleLogInput{
		LastPeriodStart:   "2025-03-01",
		CycleLength:       28,
		MensesLength:      5,
		MeanMensesLength:  5,
		BleedingIntensity: models.BleedingModerate,
		MensesScore:       3,
		HeightCm:          165,
		WeightKg:          60,
	}
}

func newTestCycleService(logs *fakeLogs, p Predictor, r ReminderScheduler) *DefaultCycleService {
	return &DefaultCycleService{
		Logs:      logs,
		Predictor: p,
		Reminders: r,
		Now:       func() time.Time { return logNow },
	}
}

func TestLogCycle_DerivedDates(t *testing.T) {
	logs := &fakeLogs{}
	svc := newTestCycleService(logs, nil, nil)

	entry, err := svc.LogCycle(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 28 days from 2025-03-01; ovulation 14 days before that; fertile window
	// five days before ovulation through one day after.
	if entry.PredictedNextPeriod != "2025-03-29" {
		t.Errorf("predicted next period = %q, want 2025-03-29", entry.PredictedNextPeriod)
	}
	if entry.EstimatedOvulationDay != "2025-03-15" {
		t.Errorf("ovulation = %q, want 2025-03-15", entry.EstimatedOvulationDay)
	}
	if entry.FertileWindowStart != "2025-03-10" || entry.FertileWindowEnd != "2025-03-16" {
		t.Errorf("fertile window = %q..%q, want 2025-03-10..2025-03-16",
			entry.FertileWindowStart, entry.FertileWindowEnd)
	}
	if entry.LogDate != "2025-03-10" {
		t.Errorf("log date = %q, want the injected clock's date", entry.LogDate)
	}
	if logs.created == nil {
		t.Fatalf("entry was not persisted")
	}
}

func TestLogCycle_BMI(t *testing.T) {
	logs := &fakeLogs{}
	svc := newTestCycleService(logs, nil, nil)

	entry, err := svc.LogCycle(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 60kg at 1.65m is 22.038..., rounded to one decimal.
	if math.Abs(entry.BMI-22.0) > 1e-9 {
		t.Errorf("BMI = %v, want 22.0", entry.BMI)
	}
}

func TestLogCycle_PredictorOverridesReportedLength(t *testing.T) {
	logs := &fakeLogs{}
	p := &fakePredictor{prediction: 30.4}
	svc := newTestCycleService(logs, p, nil)

	entry, err := svc.LogCycle(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 30.4 rounds to 30 days from 2025-03-01.
	if entry.PredictedNextPeriod != "2025-03-31" {
		t.Errorf("predicted next period = %q, want 2025-03-31", entry.PredictedNextPeriod)
	}
}

func TestLogCycle_PredictorFailureFallsBack(t *testing.T) {
	logs := &fakeLogs{}
	p := &fakePredictor{err: errors.New("connection refused")}
	svc := newTestCycleService(logs, p, nil)

	entry, err := svc.LogCycle(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("a failing predictor must not block the log: %v", err)
	}
	if entry.PredictedNextPeriod != "2025-03-29" {
		t.Errorf("fallback should use the reported cycle length, got %q", entry.PredictedNextPeriod)
	}
}

func TestLogCycle_FeatureVectorOrder(t *testing.T) {
	logs := &fakeLogs{}
	p := &fakePredictor{prediction: 28}
	svc := newTestCycleService(logs, p, nil)

	in := validInput()
	in.UnusualBleeding = true
	if _, err := svc.LogCycle(context.Background(), "user-1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{28, 5, 5, 3, float64(models.BleedingModerate), 1, 22.0}
	if len(p.features) != len(want) {
		t.Fatalf("feature vector length = %d, want %d", len(p.features), len(want))
	}
	for i := range want {
		if math.Abs(p.features[i]-want[i]) > 1e-9 {
			t.Errorf("feature[%d] = %v, want %v", i, p.features[i], want[i])
		}
	}
}

func TestLogCycle_SchedulesReminder(t *testing.T) {
	logs := &fakeLogs{}
	r := &fakeReminders{}
	svc := newTestCycleService(logs, nil, r)

	if _, err := svc.LogCycle(context.Background(), "user-1", validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.userID != "user-1" || r.predictedDate != "2025-03-29" {
		t.Errorf("reminder scheduled for %q on %q, want user-1 on 2025-03-29", r.userID, r.predictedDate)
	}
}

func TestLogCycle_ReminderFailureIsSwallowed(t *testing.T) {
	logs := &fakeLogs{}
	r := &fakeReminders{err: errors.New("queue down")}
	svc := newTestCycleService(logs, nil, r)

	if _, err := svc.LogCycle(context.Background(), "user-1", validInput()); err != nil {
		t.Fatalf("a failing scheduler must not fail the log: %v", err)
	}
}

func TestLogCycle_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.CycleLogInput)
	}{
		{"bad date", func(in *models.CycleLogInput) { in.LastPeriodStart = "03/01/2025" }},
		{"cycle too short", func(in *models.CycleLogInput) { in.CycleLength = 14 }},
		{"cycle too long", func(in *models.CycleLogInput) { in.CycleLength = 61 }},
		{"menses too short", func(in *models.CycleLogInput) { in.MensesLength = 0 }},
		{"menses too long", func(in *models.CycleLogInput) { in.MensesLength = 16 }},
		{"bleeding out of scale", func(in *models.CycleLogInput) { in.BleedingIntensity = 4 }},
		{"zero height", func(in *models.CycleLogInput) { in.HeightCm = 0 }},
		{"negative weight", func(in *models.CycleLogInput) { in.WeightKg = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &fakeLogs{}
			svc := newTestCycleService(logs, nil, nil)
			in := validInput()
			tc.mutate(&in)
			if _, err := svc.LogCycle(context.Background(), "user-1", in); err == nil {
				t.Fatalf("expected a validation error")
			}
			if logs.created != nil {
				t.Fatalf("invalid input must not be persisted")
			}
		})
	}
}

func TestHistory_ClampsLimit(t *testing.T) {
	logs := &fakeLogs{}
	for i := 0; i < 60; i++ {
		logs.entries = append(logs.entries, models.CycleLog{ID: "log"})
	}
	svc := newTestCycleService(logs, nil, nil)

	got, err := svc.History(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 50 {
		t.Errorf("zero limit should clamp to 50, got %d", len(got))
	}

	got, _ = svc.History(context.Background(), "user-1", 1000)
	if len(got) != 50 {
		t.Errorf("oversized limit should clamp to 50, got %d", len(got))
	}
}

func TestPrefill(t *testing.T) {
	logs := &fakeLogs{}
	svc := newTestCycleService(logs, nil, nil)

	// Empty history prefills nothing.
	pre, err := svc.Prefill(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *pre != (models.CyclePrefill{}) {
		t.Fatalf("expected an empty prefill, got %+v", pre)
	}

	if _, err := svc.LogCycle(context.Background(), "user-1", validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pre, err = svc.Prefill(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pre.HeightCm != 165 || pre.WeightKg != 60 || pre.CycleLength != 28 || pre.MeanMensesLength != 5 {
		t.Fatalf("prefill did not carry the latest log forward: %+v", pre)
	}
}
