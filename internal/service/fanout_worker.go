package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// FanoutBatchResult — итог обработки одной пачки из очереди.
type FanoutBatchResult struct {
	Delivered    int
	Retried      int
	DeadLettered int
}

// RunFanoutWorkers запускает fanout.workers воркеров, разбирающих очередь рассылки.
// Блокируется до отмены ctx; возвращает nil при штатной остановке.
func (s *Service) RunFanoutWorkers(ctx context.Context) error {
	const op = "service/fanout_worker/RunFanoutWorkers"

	if s.queue == nil {
		return fmt.Errorf("%s: queue: %w", op, ErrNotConfigured)
	}

	workers := s.cfg.Fanout.Workers
	if workers <= 0 {
		workers = 1
	}

	log.From(ctx).Info("fanout workers started", "op", op, "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		wctx := log.With(gctx, "worker", i)
		g.Go(func() error {
			s.fanoutWorker(wctx)
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) fanoutWorker(ctx context.Context) {
	lg := log.From(ctx)

	for ctx.Err() == nil {
		items, err := s.queue.Dequeue(ctx, s.batchCeiling())
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			lg.Error("dequeue failed", "err", err)
			sleepCtx(ctx, s.cfg.Fanout.RetryBackoff)
			continue
		}

		if len(items) == 0 {
			continue
		}

		res := s.ProcessFanoutBatch(ctx, items)
		if res.Retried > 0 {
			sleepCtx(ctx, s.cfg.Fanout.RetryBackoff)
		}
	}
}

// ProcessFanoutBatch доставляет пачку элементов очереди.
//
// Сначала пачка пишется одной атомарной операцией. Если это не удалось,
// каждый элемент пишется отдельно: повтор ID (уведомление уже доставлено)
// считается успехом. Неудачные элементы возвращаются в очередь с Attempts+1,
// а исчерпавшие fanout.max_attempts переносятся в dead-letter хранилище.
func (s *Service) ProcessFanoutBatch(ctx context.Context, items []models.FanoutItem) FanoutBatchResult {
	const op = "service/fanout_worker/ProcessFanoutBatch"

	lg := log.From(ctx).With("op", op, "size", len(items))

	var res FanoutBatchResult
	if len(items) == 0 || s.queue == nil {
		return res
	}

	batch := make([]models.Notification, 0, len(items))
	for _, it := range items {
		batch = append(batch, it.Notification)
	}

	started := time.Now()
	err := s.storage.InsertNotifications(ctx, batch)
	if err == nil {
		s.metrics.FanoutChunk(true, time.Since(started).Seconds())
		s.delivered(ctx, items)
		res.Delivered = len(items)
		return res
	}

	s.metrics.FanoutChunk(false, time.Since(started).Seconds())
	lg.Warn("batch write failed, falling back to per-item writes", "err", err)

	var delivered, retry, dead []models.FanoutItem
	for _, it := range items {
		err := s.storage.InsertNotification(ctx, it.Notification)
		if err == nil || errors.Is(err, storage.ErrConflict) {
			delivered = append(delivered, it)
			continue
		}

		it.Attempts++
		it.LastError = err.Error()

		if it.Attempts >= s.maxAttempts() {
			dead = append(dead, it)
		} else {
			retry = append(retry, it)
		}
	}

	s.delivered(ctx, delivered)
	res.Delivered = len(delivered)

	if len(dead) > 0 {
		if err := s.deadLetter(ctx, dead); err != nil {
			// Элементы не теряем: вернутся в очередь и будут сохранены на следующей попытке.
			lg.Error("dead-letter save failed, requeueing", "count", len(dead), "err", err)
			retry = append(retry, dead...)
			dead = nil
		}
	}
	res.DeadLettered = len(dead)

	if len(retry) > 0 {
		if err := s.queue.Requeue(ctx, retry); err != nil {
			lg.Error("requeue failed", "count", len(retry), "err", err)
		}

		s.metrics.FanoutItems("retried", len(retry))
		res.Retried = len(retry)
	}

	if res.Retried > 0 || res.DeadLettered > 0 {
		lg.Warn("batch delivered partially",
			"delivered", res.Delivered, "retried", res.Retried, "dead_lettered", res.DeadLettered)
	}

	return res
}

// delivered подтверждает доставленные элементы и будит подписчиков.
func (s *Service) delivered(ctx context.Context, items []models.FanoutItem) {
	if len(items) == 0 {
		return
	}

	if err := s.queue.Ack(ctx, items); err != nil {
		// Неподтверждённые элементы вернутся после RecoverInFlight; повтор ID безопасен.
		log.From(ctx).Error("ack failed", "count", len(items), "err", err)
	}

	s.metrics.FanoutItems("delivered", len(items))
	for _, it := range items {
		s.changes.Changed(ctx, models.ChangeNotifications, it.Notification.RecipientID)
	}
}

// deadLetter сохраняет элементы в dead-letter хранилище и подтверждает их в очереди.
// Без подключённого хранилища элементы только логируются.
func (s *Service) deadLetter(ctx context.Context, items []models.FanoutItem) error {
	lg := log.From(ctx)

	if s.deadLetters != nil {
		letters := make([]models.DeadLetter, 0, len(items))
		for _, it := range items {
			letters = append(letters, models.DeadLetter{
				ItemID:       it.ID,
				RecipientID:  it.Notification.RecipientID,
				Notification: it.Notification,
				Attempts:     it.Attempts,
				LastError:    it.LastError,
				FailedAt:     s.now(),
			})
		}

		if err := s.deadLetters.SaveDeadLetters(ctx, letters); err != nil {
			return err
		}
	} else {
		for _, it := range items {
			lg.Error("fanout item dropped: no dead-letter store",
				"item_id", it.ID, "recipient_id", it.Notification.RecipientID, "attempts", it.Attempts, "last_error", it.LastError)
		}
	}

	if err := s.queue.Ack(ctx, items); err != nil {
		lg.Error("ack of dead-lettered items failed", "count", len(items), "err", err)
	}

	s.metrics.DeadLetters(len(items))
	return nil
}

func (s *Service) maxAttempts() int {
	if s.cfg.Fanout.MaxAttempts <= 0 {
		return 1
	}

	return s.cfg.Fanout.MaxAttempts
}
