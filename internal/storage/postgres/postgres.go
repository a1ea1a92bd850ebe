// Package postgres — dead-letter хранилище очереди рассылки: элементы fan-out,
// исчерпавшие fanout.max_attempts, ждут здесь админского replay или удаления.
package postgres

import (
	"context"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage — таблица dead_letters поверх пула pgx.
type Storage struct {
	db *pgxpool.Pool
}

// New — пул к dead_letters.url (DEAD_LETTER_DATABASE_URL). Пул проверяется Ping,
// чтобы воркеры рассылки не стартовали с недоступным dead-letter хранилищем.
func New(ctx context.Context, dbURL string) (*Storage, error) {
	const op = "storage/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Close закрывает пул; вызывается после остановки воркеров рассылки.
func (s *Storage) Close() {
	s.db.Close()
}

var _ storage.DeadLetterStorage = (*Storage)(nil)
