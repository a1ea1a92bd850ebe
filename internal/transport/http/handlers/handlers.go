package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pribylovaa/forum-engagement/internal/service"
	apierrors "github.com/pribylovaa/forum-engagement/internal/transport/http/errors"
	"github.com/pribylovaa/forum-engagement/internal/transport/http/middleware"
	"github.com/pribylovaa/forum-engagement/internal/watch"
)

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	Service *service.Service
	// Hub — подписки; nil отключает /watch (501).
	Hub *watch.Hub

	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

func New(svc *service.Service, hub *watch.Hub) *Handlers {
	return &Handlers{
		Service: svc,
		Hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Токен проверяется AuthBearer; Origin не ограничиваем.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingInterval: 30 * time.Second,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// currentUser — аутентифицированный пользователь; без него пишет 401.
func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := middleware.UserID(r.Context())
	if uid == "" {
		apierrors.WriteError(w, r, service.ErrUnauthenticated)
		return "", false
	}
	return uid, true
}

// queryInt — необязательный неотрицательный числовой параметр.
func queryInt(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, apierrors.ErrBadRequest
	}

	return n, nil
}
