package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// AchievementResult — состояние счётчика после записи события.
type AchievementResult struct {
	Current   int64 `json:"current"`
	Goal      int64 `json:"goal"`
	Level     int64 `json:"level"`
	LeveledUp bool  `json:"leveled_up"`
}

// RecordEvent — учёт одного действия пользователя по метрике.
//
// Отсутствующий счётчик создаётся как {current:0, level:1, goal:<стартовая цель>}.
// Затем current += 1; при current >= goal уровень растёт, current обнуляется,
// а цель увеличивается на прирост метрики.
//
// Запись — compare-and-swap по версии документа: при конкурентной записи
// состояние перечитывается и шаг повторяется (не более progression.cas_retries раз).
// Поэтому каждый переход уровня фиксируется ровно одним вызовом с LeveledUp=true.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой userID;
//   - ErrInvalidEvent — неизвестная метрика;
//   - ErrStorageRead/ErrStorageWrite — ошибки хранилища (отката нет).
func (s *Service) RecordEvent(ctx context.Context, userID string, metric models.Metric) (AchievementResult, error) {
	const op = "service/progression/RecordEvent"

	userID = strings.TrimSpace(userID)
	lg := log.From(ctx).With("op", op, "user_id", userID, "metric", string(metric))

	if userID == "" {
		lg.Warn("invalid argument: empty user_id")
		return AchievementResult{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	rule, ok := s.cfg.Progression.Rule(string(metric))
	if !ok || !metric.Valid() {
		lg.Warn("invalid event: unknown metric")
		return AchievementResult{}, fmt.Errorf("%s: metric %q: %w", op, metric, ErrInvalidEvent)
	}

	retries := s.cfg.Progression.CASRetries
	if retries <= 0 {
		retries = 1
	}

	for attempt := 1; attempt <= retries; attempt++ {
		state, expected, err := s.loadAchievement(ctx, userID, metric, rule)
		if err != nil {
			lg.Error("storage error on Achievement", "err", err)
			return AchievementResult{}, readErr(op, err)
		}

		next, leveledUp := advance(state, rule)
		next.Version = expected + 1

		err = s.storage.SwapAchievement(ctx, expected, next)
		switch {
		case err == nil:
			s.metrics.Progress(string(metric), leveledUp)
			s.changes.Changed(ctx, models.ChangeAchievements, userID)

			if leveledUp {
				lg.Info("level up", "level", next.Level, "goal", next.Goal)
			}

			return AchievementResult{
				Current:   next.Current,
				Goal:      next.Goal,
				Level:     next.Level,
				LeveledUp: leveledUp,
			}, nil
		case errors.Is(err, storage.ErrConflict):
			s.metrics.CASConflict("achievement")
			lg.Debug("achievement cas conflict, retrying", "attempt", attempt)
			continue
		default:
			lg.Error("storage error on SwapAchievement", "err", err)
			return AchievementResult{}, writeErr(op, err)
		}
	}

	lg.Error("achievement cas retries exhausted", "retries", retries)
	return AchievementResult{}, fmt.Errorf("%s: cas retries exhausted: %w: %w", op, ErrStorageWrite, storage.ErrConflict)
}

// loadAchievement читает счётчик или возвращает стартовое состояние с expected=0.
func (s *Service) loadAchievement(ctx context.Context, userID string, metric models.Metric, rule config.ProgressionRule) (models.Achievement, int64, error) {
	cur, err := s.storage.Achievement(ctx, userID, metric)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return newAchievement(userID, metric, rule), 0, nil
		}

		return models.Achievement{}, 0, err
	}

	return *cur, cur.Version, nil
}

func newAchievement(userID string, metric models.Metric, rule config.ProgressionRule) models.Achievement {
	return models.Achievement{
		UserID:  userID,
		Metric:  metric,
		Current: 0,
		Goal:    rule.Goal,
		Level:   1,
		Icon:    metric.Icon(),
		Label:   metric.Label(),
	}
}

// advance — один шаг машины состояний уровня.
func advance(a models.Achievement, rule config.ProgressionRule) (models.Achievement, bool) {
	// Документы, записанные без goal/level, приводим к стартовым значениям.
	if a.Goal < 1 {
		a.Goal = rule.Goal
	}
	if a.Level < 1 {
		a.Level = 1
	}
	if a.Icon == "" {
		a.Icon = a.Metric.Icon()
	}
	if a.Label == "" {
		a.Label = a.Metric.Label()
	}

	a.Current++
	if a.Current < a.Goal {
		return a, false
	}

	a.Level++
	a.Current = 0
	a.Goal += rule.Increment

	return a, true
}

// Achievements — все счётчики пользователя; отсутствующие метрики
// возвращаются в стартовом состоянии, порядок — models.Metrics.
func (s *Service) Achievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	const op = "service/progression/Achievements"

	userID = strings.TrimSpace(userID)
	lg := log.From(ctx).With("op", op, "user_id", userID)

	if userID == "" {
		lg.Warn("invalid argument: empty user_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	stored, err := s.storage.Achievements(ctx, userID)
	if err != nil {
		lg.Error("storage error on Achievements", "err", err)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorageRead, err)
	}

	byMetric := make(map[models.Metric]models.Achievement, len(stored))
	for _, a := range stored {
		byMetric[a.Metric] = a
	}

	out := make([]models.Achievement, 0, len(models.Metrics))
	for _, m := range models.Metrics {
		if a, ok := byMetric[m]; ok {
			out = append(out, a)
			continue
		}

		rule, _ := s.cfg.Progression.Rule(string(m))
		out = append(out, newAchievement(userID, m, rule))
	}

	return out, nil
}
