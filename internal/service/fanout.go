package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// DispatchResult — итог синхронной рассылки.
type DispatchResult struct {
	Attempted int `json:"attempted"`
	Committed int `json:"committed"`
}

// Dispatch — синхронная рассылка уведомлений аудитории.
//
// Аудитория делится на пачки не больше fanout.batch_ceiling; каждая пачка
// пишется одной атомарной операцией, последовательно. Ошибка пачки логируется,
// рассылка продолжается со следующей. Повторов нет.
// Аудитория из одного получателя пишется одиночной записью.
// Начатая рассылка не прерывается отменой ctx вызывающего (см. detach);
// хранилище без транзакций может сохранить префикс пачки, он учитывается в Committed.
//
// Поведение/ошибки:
//   - ErrInvalidEvent — неизвестный тип события;
//   - ErrBatchPartial — Committed < Attempted (результат при этом заполнен).
func (s *Service) Dispatch(ctx context.Context, ev models.Event, audience []string) (DispatchResult, error) {
	const op = "service/fanout/Dispatch"

	lg := log.From(ctx).With("op", op, "type", string(ev.Type))

	if !ev.Type.Valid() {
		lg.Warn("invalid event: unknown type")
		return DispatchResult{}, fmt.Errorf("%s: type %q: %w", op, ev.Type, ErrInvalidEvent)
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	recipients := uniqueExcept(audience, "")
	res := DispatchResult{Attempted: len(recipients)}

	switch len(recipients) {
	case 0:
		return res, nil
	case 1:
		n := s.buildNotification(ev, recipients[0])
		started := time.Now()

		if err := s.storage.InsertNotification(ctx, n); err != nil {
			s.metrics.FanoutChunk(false, time.Since(started).Seconds())
			s.metrics.FanoutItems("failed", 1)
			lg.Warn("notification write failed", "recipient_id", n.RecipientID, "err", err)
			return res, fmt.Errorf("%s: %w: 0 of 1 committed: %w", op, ErrBatchPartial, err)
		}

		s.metrics.FanoutChunk(true, time.Since(started).Seconds())
		s.metrics.FanoutItems("committed", 1)
		s.changes.Changed(ctx, models.ChangeNotifications, n.RecipientID)
		res.Committed = 1
		return res, nil
	}

	notifications := s.buildNotifications(ev, recipients)
	chunks := chunk(notifications, s.batchCeiling())

	for i, batch := range chunks {
		started := time.Now()
		if err := s.storage.InsertNotifications(ctx, batch); err != nil {
			committed := partialInserted(err, len(batch))

			s.metrics.FanoutChunk(false, time.Since(started).Seconds())
			s.metrics.FanoutItems("failed", len(batch)-committed)
			lg.Warn("notification chunk failed", "chunk", i, "size", len(batch), "committed", committed, "err", err)

			if committed > 0 {
				s.metrics.FanoutItems("committed", committed)
				res.Committed += committed
				s.notifyRecipients(ctx, batch[:committed])
			}
			continue
		}

		s.metrics.FanoutChunk(true, time.Since(started).Seconds())
		s.metrics.FanoutItems("committed", len(batch))
		res.Committed += len(batch)
		s.notifyRecipients(ctx, batch)
	}

	if res.Committed < res.Attempted {
		lg.Warn("dispatch partially committed", "attempted", res.Attempted, "committed", res.Committed)
		return res, fmt.Errorf("%s: %w: %d of %d committed", op, ErrBatchPartial, res.Committed, res.Attempted)
	}

	lg.Debug("dispatch committed", "recipients", res.Committed, "chunks", len(chunks))
	return res, nil
}

// EnqueueFanout ставит по одному элементу на получателя в долговременную очередь.
// Доставкой занимаются воркеры RunFanoutWorkers. Возвращает число поставленных элементов.
//
// Поведение/ошибки:
//   - ErrNotConfigured — очередь не подключена;
//   - ErrStorageWrite — очередь недоступна (часть пачек могла быть поставлена).
func (s *Service) EnqueueFanout(ctx context.Context, ev models.Event, audience []string) (int, error) {
	const op = "service/fanout/EnqueueFanout"

	lg := log.From(ctx).With("op", op, "type", string(ev.Type))

	if s.queue == nil {
		return 0, fmt.Errorf("%s: queue: %w", op, ErrNotConfigured)
	}

	if !ev.Type.Valid() {
		lg.Warn("invalid event: unknown type")
		return 0, fmt.Errorf("%s: type %q: %w", op, ev.Type, ErrInvalidEvent)
	}

	recipients := uniqueExcept(audience, "")
	if len(recipients) == 0 {
		return 0, nil
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	now := s.now()
	items := make([]models.FanoutItem, 0, len(recipients))
	for _, n := range s.buildNotifications(ev, recipients) {
		items = append(items, models.FanoutItem{ID: n.ID, Notification: n, EnqueuedAt: now})
	}

	enqueued := 0
	for _, batch := range chunk(items, s.batchCeiling()) {
		if err := s.queue.Enqueue(ctx, batch); err != nil {
			lg.Error("enqueue failed", "enqueued", enqueued, "total", len(items), "err", err)
			return enqueued, fmt.Errorf("%s: %w: %w", op, ErrStorageWrite, err)
		}
		enqueued += len(batch)
	}

	s.metrics.FanoutItems("enqueued", enqueued)
	return enqueued, nil
}

// partialInserted — сколько элементов упавшей пачки хранилище всё же сохранило.
func partialInserted(err error, size int) int {
	var pe *storage.PartialBatchError
	if !errors.As(err, &pe) || pe.Inserted <= 0 {
		return 0
	}

	return min(pe.Inserted, size)
}

func (s *Service) notifyRecipients(ctx context.Context, batch []models.Notification) {
	for _, n := range batch {
		s.changes.Changed(ctx, models.ChangeNotifications, n.RecipientID)
	}
}

func (s *Service) batchCeiling() int {
	c := s.cfg.Fanout.BatchCeiling
	if c <= 0 || c > config.MaxBatchCeiling {
		return config.MaxBatchCeiling
	}

	return c
}

// chunk делит срез на части не длиннее size.
func chunk[T any](items []T, size int) [][]T {
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}

	return out
}
