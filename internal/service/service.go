// service содержит бизнес-логику движка вовлечённости: прогресс достижений,
// расчёт аудитории, рассылку уведомлений, членство в сообществах и реестр переключателей.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/metrics"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
)

var (
	// ErrStorageRead — хранилище не смогло прочитать нужное состояние.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite — хранилище не смогло записать изменение.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrBatchPartial — часть пачек рассылки не записана.
	ErrBatchPartial = errors.New("batch partially committed")
	// ErrInvalidEvent — неизвестная метрика или тип события.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated — вызов без идентифицированного пользователя.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotConfigured — операция требует компонента, который не подключён (очередь, dead letters).
	ErrNotConfigured = errors.New("not configured")
)

// Queue — долговременная очередь элементов рассылки.
// Реализации: queue/redis (продакшен) и queue/memory.
type Queue interface {
	Enqueue(ctx context.Context, items []models.FanoutItem) error
	// Dequeue ждёт элементы ограниченное время; пустой результат без ошибки — очередь пуста.
	Dequeue(ctx context.Context, max int) ([]models.FanoutItem, error)
	Ack(ctx context.Context, items []models.FanoutItem) error
	Requeue(ctx context.Context, items []models.FanoutItem) error
	Close() error
}

// ChangeNotifier получает сигнал «у ключа изменилось состояние» для подписок.
// key — идентификатор пользователя (получатель уведомлений или владелец достижений).
type ChangeNotifier interface {
	Changed(ctx context.Context, kind models.ChangeKind, key string)
}

type noopNotifier struct{}

func (noopNotifier) Changed(context.Context, models.ChangeKind, string) {}

// Service — бизнес-логика engagement-service.
type Service struct {
	storage     storage.Storage
	queue       Queue
	deadLetters storage.DeadLetterStorage
	changes     ChangeNotifier
	metrics     *metrics.Metrics
	cfg         config.Config
	now         func() time.Time
	newID       func() string
}

// Option — функциональная опция конструктора.
type Option func(*Service)

// WithQueue подключает очередь рассылки (нужна для fanout.mode=queue).
func WithQueue(q Queue) Option {
	return func(s *Service) { s.queue = q }
}

// WithDeadLetters подключает хранилище элементов, исчерпавших попытки.
func WithDeadLetters(d storage.DeadLetterStorage) Option {
	return func(s *Service) { s.deadLetters = d }
}

// WithChangeNotifier подключает уведомление подписок.
func WithChangeNotifier(n ChangeNotifier) Option {
	return func(s *Service) {
		if n != nil {
			s.changes = n
		}
	}
}

// WithMetrics подключает prometheus-метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник времени (тесты).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов уведомлений.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		cfg:     cfg,
		changes: noopNotifier{},
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// readErr переводит ошибку чтения хранилища в сервисную.
func readErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrStorageRead, err)
}

// writeErr переводит ошибку записи хранилища в сервисную.
func writeErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrStorageWrite, err)
}

// sleepCtx ждёт d или отмену контекста.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// detach отвязывает начатую операцию от отмены и дедлайна вызывающего:
// обработка события и рассылка доводятся до конца, даже если клиент ушёл.
// Верхняя граница — fanout.event_timeout (0 — без ограничения).
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if d := s.cfg.Fanout.EventTimeout; d > 0 {
		return context.WithTimeout(ctx, d)
	}

	return ctx, func() {}
}
