package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// ListDeadLetters — элементы рассылки, исчерпавшие попытки, самые старые первыми.
func (s *Service) ListDeadLetters(ctx context.Context, limit int) ([]models.DeadLetter, error) {
	const op = "service/deadletters/ListDeadLetters"

	if s.deadLetters == nil {
		return nil, fmt.Errorf("%s: dead-letter store: %w", op, ErrNotConfigured)
	}

	list, err := s.deadLetters.ListDeadLetters(ctx, s.replayLimit(limit))
	if err != nil {
		log.From(ctx).Error("dead-letter list failed", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrStorageRead, err)
	}

	return list, nil
}

// ReplayDeadLetters возвращает до limit элементов в доставку и удаляет их
// из dead-letter хранилища. При подключённой очереди элементы ставятся в неё
// с обнулённым счётчиком попыток, иначе пишутся напрямую.
// Возвращает число переигранных элементов.
func (s *Service) ReplayDeadLetters(ctx context.Context, limit int) (int, error) {
	const op = "service/deadletters/ReplayDeadLetters"

	lg := log.From(ctx).With("op", op)

	letters, err := s.ListDeadLetters(ctx, limit)
	if err != nil {
		return 0, err
	}
	if len(letters) == 0 {
		return 0, nil
	}

	replayed := make([]string, 0, len(letters))

	if s.queue != nil {
		items := make([]models.FanoutItem, 0, len(letters))
		for _, l := range letters {
			items = append(items, models.FanoutItem{ID: l.ItemID, Notification: l.Notification, EnqueuedAt: s.now()})
		}

		if err := s.queue.Enqueue(ctx, items); err != nil {
			lg.Error("enqueue of dead letters failed", "err", err)
			return 0, fmt.Errorf("%s: %w: %w", op, ErrStorageWrite, err)
		}

		for _, l := range letters {
			replayed = append(replayed, l.ItemID)
		}
	} else {
		for _, l := range letters {
			err := s.storage.InsertNotification(ctx, l.Notification)
			if err != nil && !errors.Is(err, storage.ErrConflict) {
				lg.Warn("dead letter still failing", "item_id", l.ItemID, "err", err)
				continue
			}

			replayed = append(replayed, l.ItemID)
			s.changes.Changed(ctx, models.ChangeNotifications, l.RecipientID)
		}
	}

	if err := s.deadLetters.DeleteDeadLetters(ctx, replayed); err != nil {
		// Повторная переигровка даст дубликат ID, который доставка считает успехом.
		lg.Error("dead-letter delete failed", "count", len(replayed), "err", err)
		return len(replayed), fmt.Errorf("%s: %w: %w", op, ErrStorageWrite, err)
	}

	lg.Info("dead letters replayed", "count", len(replayed), "listed", len(letters))
	return len(replayed), nil
}

func (s *Service) replayLimit(limit int) int {
	if limit <= 0 || limit > s.batchCeiling() {
		return s.batchCeiling()
	}

	return limit
}
