// watch — непрерывные подписки на состояние пользователя (уведомления и достижения).
//
// Изменения публикуются в шину watermill (gochannel) — по топику на вид сущности.
// Каждый подписчик получает упорядоченный поток полных снимков состояния:
// первый снимок сразу после подписки, затем по снимку на каждое изменение.
// Медленный подписчик не тормозит публикацию: непрочитанный снимок заменяется свежим.
// Подписка заканчивается отменой ctx.
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// topicPrefix — топики шины: engagement.changes.<kind>.
const topicPrefix = "engagement.changes."

// ErrInvalidQuery — неизвестный вид подписки или пустой пользователь.
var ErrInvalidQuery = errors.New("invalid query")

// Query — на что подписываемся.
type Query struct {
	Kind   models.ChangeKind
	UserID string
	// Limit — размер снимка уведомлений (0 — значение по умолчанию источника).
	Limit int64
}

// Snapshot — полное состояние на момент изменения. Seq растёт внутри одной подписки.
type Snapshot struct {
	Kind          models.ChangeKind     `json:"kind"`
	Seq           uint64                `json:"seq"`
	At            time.Time             `json:"at"`
	Notifications []models.Notification `json:"notifications,omitempty"`
	Achievements  []models.Achievement  `json:"achievements,omitempty"`
}

// Source читает состояние для снимков. Реализуется service.Service.
type Source interface {
	ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
	Achievements(ctx context.Context, userID string) ([]models.Achievement, error)
}

// change — полезная нагрузка сообщения шины.
type change struct {
	Kind models.ChangeKind `json:"kind"`
	Key  string            `json:"key"`
}

// Hub — публикация изменений и выдача подписок.
type Hub struct {
	bus         *gochannel.GoChannel
	subscribers atomic.Int64
}

// NewBus создаёт шину в памяти процесса.
func NewBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)
}

// New оборачивает шину.
func New(bus *gochannel.GoChannel) *Hub {
	return &Hub{bus: bus}
}

// Changed публикует сигнал об изменении состояния ключа (пользователя).
func (h *Hub) Changed(ctx context.Context, kind models.ChangeKind, key string) {
	const op = "watch/Changed"

	payload, err := json.Marshal(change{Kind: kind, Key: key})
	if err != nil {
		log.From(ctx).Error("change marshal failed", "op", op, "err", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := h.bus.Publish(topicPrefix+string(kind), msg); err != nil {
		log.From(ctx).Warn("change publish failed", "op", op, "kind", string(kind), "err", err)
	}
}

// Subscribers — число активных подписок.
func (h *Hub) Subscribers() int64 {
	return h.subscribers.Load()
}

// Subscribe регистрирует подписку. Канал закрывается после отмены ctx.
func (h *Hub) Subscribe(ctx context.Context, q Query, src Source) (<-chan Snapshot, error) {
	const op = "watch/Subscribe"

	q.UserID = strings.TrimSpace(q.UserID)
	if q.UserID == "" || (q.Kind != models.ChangeNotifications && q.Kind != models.ChangeAchievements) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuery)
	}

	// Подписка на шину до первого снимка: изменение между ними не потеряется.
	messages, err := h.bus.Subscribe(ctx, topicPrefix+string(q.Kind))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(chan Snapshot, 1)
	h.subscribers.Add(1)

	go func() {
		defer close(out)
		defer h.subscribers.Add(-1)

		lg := log.From(ctx).With("op", op, "kind", string(q.Kind), "user_id", q.UserID)
		var seq uint64

		push := func() {
			snap, err := load(ctx, src, q)
			if err != nil {
				if ctx.Err() == nil {
					lg.Warn("snapshot load failed", "err", err)
				}
				return
			}

			seq++
			snap.Seq = seq
			offer(out, snap)
		}

		push()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				msg.Ack()

				var c change
				if err := json.Unmarshal(msg.Payload, &c); err != nil || c.Key != q.UserID {
					continue
				}

				push()
			}
		}
	}()

	return out, nil
}

// Close закрывает шину; все подписки завершаются.
func (h *Hub) Close() error {
	return h.bus.Close()
}

// offer кладёт снимок в канал с буфером 1, вытесняя непрочитанный.
// Отправитель у канала один, поэтому после вытеснения место гарантировано.
func offer(out chan Snapshot, snap Snapshot) {
	select {
	case out <- snap:
		return
	default:
	}

	select {
	case <-out:
	default:
	}

	out <- snap
}

func load(ctx context.Context, src Source, q Query) (Snapshot, error) {
	snap := Snapshot{Kind: q.Kind, At: time.Now().UTC()}

	switch q.Kind {
	case models.ChangeNotifications:
		list, err := src.ListNotifications(ctx, q.UserID, q.Limit)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Notifications = list
	case models.ChangeAchievements:
		list, err := src.Achievements(ctx, q.UserID)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Achievements = list
	}

	return snap, nil
}
