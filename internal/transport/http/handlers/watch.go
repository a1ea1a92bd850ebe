package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/service"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
	"github.com/pribylovaa/forum-engagement/internal/watch"
	logctx "github.com/pribylovaa/forum-engagement/pkg/log"
)

const writeWait = 10 * time.Second

func (h *Handlers) WatchNotifications(w http.ResponseWriter, r *http.Request) {
	h.watch(w, r, models.ChangeNotifications)
}

func (h *Handlers) WatchAchievements(w http.ResponseWriter, r *http.Request) {
	h.watch(w, r, models.ChangeAchievements)
}

// watch — websocket-подписка: клиент получает JSON-снимки watch.Snapshot,
// первый сразу после подключения. Подписка живёт, пока открыто соединение.
func (h *Handlers) watch(w http.ResponseWriter, r *http.Request, kind models.ChangeKind) {
	uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	if h.Hub == nil {
		apierrors.WriteError(w, r, service.ErrNotConfigured)
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snapshots, err := h.Hub.Subscribe(ctx, watch.Query{Kind: kind, UserID: uid, Limit: limit}, h.Service)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам ответил клиенту 4xx.
		return
	}
	defer conn.Close()

	lg := logctx.From(ctx).With("kind", string(kind))
	lg.Debug("watch subscribed")

	go readPump(conn, cancel, h.pingInterval)

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case snap, open := <-snapshots:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				lg.Debug("watch write failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump читает входящие кадры (клиент ничего не шлёт, кроме pong/close)
// и отменяет подписку при закрытии соединения.
func readPump(conn *websocket.Conn, cancel context.CancelFunc, pingInterval time.Duration) {
	defer cancel()

	wait := 2 * pingInterval
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
