// File: cron/worker.go
// Package cron runs the background worker: periodic slot pruning, appointment
// lifecycle sweeps and scheduled cycle reminders, all driven through asynq.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"femicare/config"
	appointmentRepo "femicare/database/repository/appointment"
	slotRepo "femicare/database/repository/slot"
	userRepo "femicare/database/repository/user"
	"femicare/models"
	"femicare/services/notification"
	"femicare/services/tasks"
	"femicare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Deps carries everything the worker handlers need.
type Deps struct {
	Slots        slotRepo.SlotRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Notifier     notification.NotificationService
	PendingTTL   time.Duration
	Now          func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitWorker starts the asynq server and the periodic scheduler in the
// background.
func InitWorker(deps Deps) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpts(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSlotCleanup, deps.handleSlotCleanup)
	mux.HandleFunc(tasks.TypeAppointmentSweep, deps.handleAppointmentSweep)
	mux.HandleFunc(tasks.TypeCycleReminder, deps.handleCycleReminder)

	go func() {
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			logger.Info("starting background worker", zap.Int("attempt", attempts))
			if err := srv.Run(mux); err != nil {
				logger.Error("background worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("background worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			break
		}
	}()

	go runScheduler()
}

// runScheduler enqueues the periodic maintenance tasks.
func runScheduler() {
	logger := utils.GetLogger()
	scheduler := asynq.NewScheduler(redisOpts(), nil)

	if _, err := scheduler.Register("@every 10m", tasks.NewAppointmentSweepTask()); err != nil {
		logger.Error("failed to register appointment sweep", zap.Error(err))
	}
	if _, err := scheduler.Register("@every 30m", tasks.NewSlotCleanupTask()); err != nil {
		logger.Error("failed to register slot cleanup", zap.Error(err))
	}

	if err := scheduler.Run(); err != nil {
		logger.Error("task scheduler stopped", zap.Error(err))
	}
}

// handleSlotCleanup deletes unbooked slots whose window already passed.
func (d *Deps) handleSlotCleanup(ctx context.Context, _ *asynq.Task) error {
	now := d.now()
	today := now.Format(models.DateLayout)
	nowMinutes := now.Hour()*60 + now.Minute()

	deleted, err := d.Slots.DeleteExpired(ctx, today, nowMinutes)
	if err != nil {
		utils.GetLogger().Error("slot cleanup failed", zap.Error(err))
		return err
	}
	if deleted > 0 {
		utils.GetLogger().Info("pruned expired slots", zap.Int64("deleted", deleted))
	}
	return nil
}

// handleAppointmentSweep persists the transitions the read path only derives:
// stale pendings become expired (freeing their slots) and approved
// appointments whose window closed become completed.
func (d *Deps) handleAppointmentSweep(ctx context.Context, _ *asynq.Task) error {
	logger := utils.GetLogger()
	now := d.now()

	stale, err := d.Appointments.FindPendingBefore(ctx, now.Add(-d.PendingTTL))
	if err != nil {
		logger.Error("appointment sweep: pending scan failed", zap.Error(err))
		return err
	}
	for _, appt := range stale {
		if _, err := d.Appointments.UpdateStatus(ctx, appt.ID, models.StatusPending, models.StatusExpired, nil); err != nil {
			if err != appointmentRepo.ErrInvalidTransition {
				logger.Warn("appointment sweep: expire failed",
					zap.String("appointmentId", appt.ID), zap.Error(err))
			}
			continue
		}
		if err := d.Slots.Release(ctx, appt.SlotID); err != nil {
			logger.Warn("appointment sweep: slot release failed",
				zap.String("slotId", appt.SlotID), zap.Error(err))
		}
	}

	today := now.Format(models.DateLayout)
	nowMinutes := now.Hour()*60 + now.Minute()
	ended, err := d.Appointments.FindApprovedEndedBy(ctx, today, nowMinutes)
	if err != nil {
		logger.Error("appointment sweep: approved scan failed", zap.Error(err))
		return err
	}
	for _, appt := range ended {
		if _, err := d.Appointments.UpdateStatus(ctx, appt.ID, models.StatusApproved, models.StatusCompleted,
			map[string]interface{}{"completedAt": now}); err != nil && err != appointmentRepo.ErrInvalidTransition {
			logger.Warn("appointment sweep: complete failed",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	if len(stale) > 0 || len(ended) > 0 {
		logger.Info("appointment sweep finished",
			zap.Int("expired", len(stale)), zap.Int("completed", len(ended)))
	}
	return nil
}

// handleCycleReminder mails a patient that their predicted period is near.
func (d *Deps) handleCycleReminder(ctx context.Context, task *asynq.Task) error {
	var p tasks.CycleReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		utils.GetLogger().Error("cycle reminder: invalid payload", zap.Error(err))
		return err
	}
	patient, err := d.Users.GetByID(ctx, p.UserID)
	if err != nil {
		utils.GetLogger().Warn("cycle reminder: user lookup failed",
			zap.String("userId", p.UserID), zap.Error(err))
		return nil
	}
	d.Notifier.CycleReminder(ctx, patient, p.PredictedDate)
	return nil
}
