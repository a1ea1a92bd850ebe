// redis — долговременная очередь рассылки уведомлений поверх списков Redis.
//
// Схема ключей (prefix по умолчанию "engagement:fanout:"):
//   - {prefix}pending    — LIST ожидающих элементов (LPUSH -> RPOP, FIFO);
//   - {prefix}processing — LIST элементов, взятых воркерами и ещё не подтверждённых.
//
// Dequeue атомарно переносит элемент из pending в processing (BLMOVE/LMOVE), поэтому
// падение процесса не теряет элементы: RecoverInFlight возвращает их в pending.
// Повторная доставка безопасна, так как ID элемента равен ID уведомления.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pribylovaa/forum-engagement/internal/models"

	goredis "github.com/redis/go-redis/v9"
)

// Queue — очередь на Redis.
type Queue struct {
	rdb         *goredis.Client
	pending     string
	processing  string
	pollTimeout time.Duration

	// inflight хранит исходные байты взятых элементов: LREM удаляет по точному значению.
	mu       sync.Mutex
	inflight map[string]string
}

// New создаёт клиента Redis из URL (например, redis://:pass@host:6379/0) и проверяет соединение.
// Если prefix пустой — используется "engagement:fanout:".
func New(ctx context.Context, redisURL, prefix string, pollTimeout time.Duration) (*Queue, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}

	rdb := goredis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(rdb, prefix, pollTimeout), nil
}

// NewWithClient оборачивает уже созданный клиент.
func NewWithClient(rdb *goredis.Client, prefix string, pollTimeout time.Duration) *Queue {
	if prefix == "" {
		prefix = "engagement:fanout:"
	}

	if pollTimeout <= 0 {
		pollTimeout = 2 * time.Second
	}

	return &Queue{
		rdb:         rdb,
		pending:     prefix + "pending",
		processing:  prefix + "processing",
		pollTimeout: pollTimeout,
		inflight:    make(map[string]string),
	}
}

// Enqueue добавляет элементы в pending одной командой LPUSH.
func (q *Queue) Enqueue(ctx context.Context, items []models.FanoutItem) error {
	const op = "queue/redis/Enqueue"

	if len(items) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(items))
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("%s: marshal %s: %w", op, it.ID, err)
		}
		values = append(values, raw)
	}

	if err := q.rdb.LPush(ctx, q.pending, values...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Dequeue ждёт первый элемент не дольше pollTimeout, затем без ожидания добирает
// до max элементов. Пустой результат без ошибки означает, что очередь пуста.
func (q *Queue) Dequeue(ctx context.Context, max int) ([]models.FanoutItem, error) {
	const op = "queue/redis/Dequeue"

	if max <= 0 {
		max = 1
	}

	first, err := q.rdb.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", q.pollTimeout).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: blmove: %w", op, err)
	}

	raws := []string{first}
	for len(raws) < max {
		raw, err := q.rdb.LMove(ctx, q.pending, q.processing, "RIGHT", "LEFT").Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				break
			}

			// Уже взятые элементы остаются в processing и вернутся через RecoverInFlight.
			return nil, fmt.Errorf("%s: lmove: %w", op, err)
		}
		raws = append(raws, raw)
	}

	items := make([]models.FanoutItem, 0, len(raws))

	q.mu.Lock()
	defer q.mu.Unlock()

	for _, raw := range raws {
		var it models.FanoutItem
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			// Битый элемент не восстановить: убираем его, чтобы не зациклиться.
			_ = q.rdb.LRem(ctx, q.processing, 1, raw).Err()
			continue
		}

		q.inflight[it.ID] = raw
		items = append(items, it)
	}

	return items, nil
}

// Ack подтверждает обработку: элементы удаляются из processing.
func (q *Queue) Ack(ctx context.Context, items []models.FanoutItem) error {
	const op = "queue/redis/Ack"

	if len(items) == 0 {
		return nil
	}

	pipe := q.rdb.TxPipeline()
	for _, raw := range q.takeInflight(items) {
		pipe.LRem(ctx, q.processing, 1, raw)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Requeue возвращает элементы в pending с обновлёнными полями (Attempts, LastError).
// Удаление из processing и добавление в pending выполняются одной транзакцией MULTI/EXEC.
func (q *Queue) Requeue(ctx context.Context, items []models.FanoutItem) error {
	const op = "queue/redis/Requeue"

	if len(items) == 0 {
		return nil
	}

	old := q.takeInflight(items)

	pipe := q.rdb.TxPipeline()
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("%s: marshal %s: %w", op, it.ID, err)
		}

		if prev, ok := old[it.ID]; ok {
			pipe.LRem(ctx, q.processing, 1, prev)
		}
		pipe.LPush(ctx, q.pending, raw)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RecoverInFlight возвращает в pending всё, что осталось в processing
// (например, после аварийной остановки). Вызывать до запуска воркеров.
func (q *Queue) RecoverInFlight(ctx context.Context) (int, error) {
	const op = "queue/redis/RecoverInFlight"

	n := 0
	for {
		err := q.rdb.LMove(ctx, q.processing, q.pending, "RIGHT", "RIGHT").Err()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				return n, nil
			}

			return n, fmt.Errorf("%s: %w", op, err)
		}
		n++
	}
}

// Len — число ожидающих элементов.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.pending).Result()
}

// Close закрывает клиент Redis.
func (q *Queue) Close() error {
	return q.rdb.Close()
}

func (q *Queue) takeInflight(items []models.FanoutItem) map[string]string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make(map[string]string, len(items))
	for _, it := range items {
		if raw, ok := q.inflight[it.ID]; ok {
			out[it.ID] = raw
			delete(q.inflight, it.ID)
		}
	}

	return out
}
