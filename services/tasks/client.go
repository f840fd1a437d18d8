// File: services/tasks/client.go
package tasks

import (
	"fmt"
	"time"

	"femicare/config"
	"femicare/models"

	"github.com/hibiken/asynq"
)

// Client enqueues tasks for the background worker.
type Client struct {
	client *asynq.Client
}

func NewClient() *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})}
}

// ScheduleCycleReminder queues a reminder two days before the predicted
// period, at 09:00 local time. Predictions already in the past are skipped.
func (c *Client) ScheduleCycleReminder(userID, predictedDate string) error {
	day, err := time.ParseInLocation(models.DateLayout, predictedDate, time.Local)
	if err != nil {
		return fmt.Errorf("invalid predicted date %q: %w", predictedDate, err)
	}
	fireAt := day.AddDate(0, 0, -2).Add(9 * time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	task, opts, err := NewCycleReminderTask(CycleReminderPayload{
		UserID:        userID,
		PredictedDate: predictedDate,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := c.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue cycle reminder: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
