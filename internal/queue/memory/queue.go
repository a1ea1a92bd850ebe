// memory — очередь рассылки в памяти процесса (локальный запуск и тесты).
// Не переживает рестарт: для продакшена используйте queue/redis.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pribylovaa/forum-engagement/internal/models"
)

// Queue — FIFO с учётом взятых, но не подтверждённых элементов.
type Queue struct {
	mu          sync.Mutex
	pending     []models.FanoutItem
	inflight    map[string]models.FanoutItem
	signal      chan struct{}
	pollTimeout time.Duration
	closed      bool
}

// New создаёт пустую очередь. pollTimeout <= 0 — 2s.
func New(pollTimeout time.Duration) *Queue {
	if pollTimeout <= 0 {
		pollTimeout = 2 * time.Second
	}

	return &Queue{
		inflight:    make(map[string]models.FanoutItem),
		signal:      make(chan struct{}, 1),
		pollTimeout: pollTimeout,
	}
}

func (q *Queue) Enqueue(_ context.Context, items []models.FanoutItem) error {
	if len(items) == 0 {
		return nil
	}

	q.mu.Lock()
	q.pending = append(q.pending, items...)
	q.mu.Unlock()

	q.wake()
	return nil
}

// Dequeue ждёт элементы не дольше pollTimeout; пустой результат — очередь пуста.
func (q *Queue) Dequeue(ctx context.Context, max int) ([]models.FanoutItem, error) {
	if max <= 0 {
		max = 1
	}

	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	for {
		if items := q.take(max); len(items) > 0 {
			return items, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, nil
		case <-q.signal:
		}
	}
}

func (q *Queue) Ack(_ context.Context, items []models.FanoutItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, it := range items {
		delete(q.inflight, it.ID)
	}

	return nil
}

func (q *Queue) Requeue(_ context.Context, items []models.FanoutItem) error {
	q.mu.Lock()
	for _, it := range items {
		delete(q.inflight, it.ID)
		q.pending = append(q.pending, it)
	}
	q.mu.Unlock()

	q.wake()
	return nil
}

// Len — число ожидающих элементов.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// InFlight — число взятых и не подтверждённых элементов.
func (q *Queue) InFlight() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.inflight)
}

func (q *Queue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	return nil
}

func (q *Queue) take(max int) []models.FanoutItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.pending) == 0 {
		return nil
	}

	n := len(q.pending)
	if n > max {
		n = max
	}

	out := make([]models.FanoutItem, n)
	copy(out, q.pending[:n])
	q.pending = q.pending[n:]

	for _, it := range out {
		q.inflight[it.ID] = it
	}

	return out
}

func (q *Queue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
