// File: services/insights/service.go
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"femicare/models"
	"femicare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 12 * time.Hour

// ContentGenerator is the model call behind the insight text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// CycleHistory supplies recent logs for the prompt.
type CycleHistory interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CycleLog, error)
}

// Service turns a patient's recent cycle logs into a readable summary.
// Generated summaries are cached in Redis keyed by the latest log, so the
// model is only consulted when new data arrives.
type Service struct {
	Generator ContentGenerator
	Logs      CycleHistory
	Cache     *redis.Client
}

// CycleInsight summarizes the user's recent logs. The model sees aggregate
// numbers only, never identifying details.
func (s *Service) CycleInsight(ctx context.Context, userID string) (string, error) {
	logs, err := s.Logs.ListByUser(ctx, userID, 6)
	if err != nil {
		return "", err
	}
	if len(logs) == 0 {
		return "", fmt.Errorf("no cycle logs recorded yet")
	}

	cacheKey := fmt.Sprintf("insight:%s:%s", userID, logs[0].LogDate)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	var sb strings.Builder
	sb.WriteString("You are a supportive women's health assistant. Summarize the following menstrual cycle history in two short paragraphs of plain language. Mention notable trends and gently suggest seeing a doctor if anything looks unusual. Do not give a diagnosis.\n\n")
	for _, log := range logs {
		fmt.Fprintf(&sb, "- logged %s: cycle %d days, menses %d days, bleeding intensity %d/3, unusual bleeding %t, predicted next period %s\n",
			log.LogDate, log.CycleLength, log.MensesLength, log.BleedingIntensity, log.UnusualBleeding, log.PredictedNextPeriod)
	}

	text, err := s.Generator.GenerateContent(ctx, sb.String())
	if err != nil {
		utils.GetLogger().Warn("cycle insight generation failed",
			zap.String("userId", userID), zap.Error(err))
		return "", fmt.Errorf("insights are unavailable right now, please try again later")
	}
	text = strings.TrimSpace(text)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, cacheKey, text, cacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache cycle insight",
				zap.String("userId", userID), zap.Error(err))
		}
	}
	return text, nil
}
