package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveDeadLetters сохраняет элементы по одному: каждый INSERT атомарен сам по себе,
// а повтор item_id (элемент уже сохранён прошлой попыткой) просто пропускается.
func (s *Storage) SaveDeadLetters(ctx context.Context, items []models.DeadLetter) error {
	const op = "storage/postgres/SaveDeadLetters"

	for _, item := range items {
		payload, err := json.Marshal(item.Notification)
		if err != nil {
			return fmt.Errorf("%s: marshal %s: %w", op, item.ItemID, err)
		}

		_, err = s.db.Exec(ctx, `
		INSERT INTO fanout_dead_letters (item_id, recipient_id, payload, attempts, last_error, failed_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, $6)
		`, item.ItemID, item.RecipientID, string(payload), item.Attempts, item.LastError, item.FailedAt.UTC())

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				continue
			}

			return fmt.Errorf("%s: item %s: %w", op, item.ItemID, err)
		}
	}

	return nil
}

// ListDeadLetters возвращает самые старые элементы первыми.
func (s *Storage) ListDeadLetters(ctx context.Context, limit int) ([]models.DeadLetter, error) {
	const op = "storage/postgres/ListDeadLetters"

	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
	SELECT item_id, recipient_id, payload, attempts, last_error, failed_at
	FROM fanout_dead_letters
	ORDER BY failed_at ASC, item_id ASC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.DeadLetter
	for rows.Next() {
		var (
			item    models.DeadLetter
			payload []byte
		)

		if err := rows.Scan(&item.ItemID, &item.RecipientID, &payload, &item.Attempts, &item.LastError, &item.FailedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if err := json.Unmarshal(payload, &item.Notification); err != nil {
			return nil, fmt.Errorf("%s: payload %s: %w", op, item.ItemID, err)
		}

		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

// DeleteDeadLetters удаляет элементы по item_id; отсутствующие игнорируются.
func (s *Storage) DeleteDeadLetters(ctx context.Context, ids []string) error {
	const op = "storage/postgres/DeleteDeadLetters"

	if len(ids) == 0 {
		return nil
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM fanout_dead_letters WHERE item_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
