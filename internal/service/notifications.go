package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// ListNotifications — уведомления получателя, новые первыми.
// limit <= 0 — limits.default; больше limits.max — обрезается до limits.max.
func (s *Service) ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	const op = "service/notifications/ListNotifications"

	recipientID = strings.TrimSpace(recipientID)
	lg := log.From(ctx).With("op", op, "recipient_id", recipientID)

	if recipientID == "" {
		lg.Warn("invalid argument: empty recipient_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	list, err := s.storage.ListNotifications(ctx, recipientID, s.normalizeLimit(limit))
	if err != nil {
		lg.Error("storage error on ListNotifications", "err", err)
		return nil, readErr(op, err)
	}

	return list, nil
}

// MarkAllRead помечает прочитанными все уведомления получателя и возвращает их число.
func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	const op = "service/notifications/MarkAllRead"

	recipientID = strings.TrimSpace(recipientID)
	lg := log.From(ctx).With("op", op, "recipient_id", recipientID)

	if recipientID == "" {
		lg.Warn("invalid argument: empty recipient_id")
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	n, err := s.storage.MarkAllRead(ctx, recipientID)
	if err != nil {
		lg.Error("storage error on MarkAllRead", "err", err)
		return 0, writeErr(op, err)
	}

	if n > 0 {
		s.changes.Changed(ctx, models.ChangeNotifications, recipientID)
	}

	return n, nil
}

// DeleteNotification удаляет уведомление получателя.
//
// Поведение/ошибки:
//   - ErrNotFound — уведомления нет (или оно чужое);
//   - ErrStorageWrite — иные ошибки хранилища.
func (s *Service) DeleteNotification(ctx context.Context, recipientID, id string) error {
	const op = "service/notifications/DeleteNotification"

	recipientID = strings.TrimSpace(recipientID)
	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "recipient_id", recipientID, "id", id)

	if recipientID == "" || id == "" {
		lg.Warn("invalid argument: empty recipient_id or id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteNotification(ctx, recipientID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("notification not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on DeleteNotification", "err", err)
		return writeErr(op, err)
	}

	s.changes.Changed(ctx, models.ChangeNotifications, recipientID)
	return nil
}

func (s *Service) normalizeLimit(limit int64) int64 {
	def, ceiling := s.cfg.Limits.Default, s.cfg.Limits.Max
	if def <= 0 {
		def = 20
	}
	if ceiling <= 0 {
		ceiling = 300
	}

	switch {
	case limit <= 0:
		return def
	case limit > ceiling:
		return ceiling
	default:
		return limit
	}
}
