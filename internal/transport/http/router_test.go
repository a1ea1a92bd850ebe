package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/service"
	"github.com/pribylovaa/forum-engagement/internal/storage/memory"
	"github.com/pribylovaa/forum-engagement/internal/transport/http/handlers"
	"github.com/pribylovaa/forum-engagement/internal/watch"
)

var testAuth = config.AuthConfig{
	Secret:   "router-secret",
	Issuer:   "auth-service",
	Audience: []string{"forum"},
	Admins:   []string{"u-admin"},
}

type env struct {
	srv   *httptest.Server
	store *memory.Storage
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := config.Config{
		Progression: config.ProgressionConfig{
			Posts:      config.ProgressionRule{Goal: 5, Increment: 5},
			Comments:   config.ProgressionRule{Goal: 10, Increment: 10},
			CASRetries: 16,
		},
		Fanout: config.FanoutConfig{Mode: config.FanoutInline, BatchCeiling: config.MaxBatchCeiling, Workers: 1, MaxAttempts: 1},
		Limits: config.LimitsConfig{Default: 20, Max: 300},
		Auth:   testAuth,
	}

	store := memory.New()
	hub := watch.New(watch.NewBus())
	t.Cleanup(func() { _ = hub.Close() })

	svc := service.New(store, cfg, service.WithChangeNotifier(hub))
	router := NewRouter(handlers.New(svc, hub), Options{Timeout: 5 * time.Second, Auth: testAuth, BasePath: "/v1"})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{srv: srv, store: store}
}

func token(t *testing.T, uid string) string {
	t.Helper()
	now := time.Now()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"iss": testAuth.Issuer,
		"aud": testAuth.Audience,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte(testAuth.Secret))
	require.NoError(t, err)
	return tok
}

// do выполняет запрос от имени uid ("" — без токена) и декодирует JSON в out (если не nil).
func (e *env) do(t *testing.T, method, path, uid string, body any, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, uid))
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func TestRouter_Unauthenticated(t *testing.T) {
	e := newEnv(t)

	var body errEnvelope
	status := e.do(t, http.MethodGet, "/v1/notifications", "", nil, &body)

	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "unauthenticated", body.Error.Code)
	require.NotEmpty(t, body.Error.RequestID)
}

func TestRouter_CommunityPostAndBell(t *testing.T) {
	e := newEnv(t)

	var community models.Community
	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/communities", "u-owner",
		map[string]string{"id": "c-1", "title": "Go"}, &community))
	require.Equal(t, "u-owner", community.CreatorID)
	require.EqualValues(t, 0, community.MembersCount)

	var joined service.MembershipResult
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/communities/c-1/join", "u-1", nil, &joined))
	require.Equal(t, service.MembershipResult{Changed: true, Members: 1}, joined)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/communities/c-1/join", "u-2", nil, &joined))
	require.EqualValues(t, 2, joined.Members)

	// Повторное вступление ничего не меняет.
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/communities/c-1/join", "u-2", nil, &joined))
	require.Equal(t, service.MembershipResult{Changed: false, Members: 2}, joined)

	var outcome struct {
		service.EventOutcome
		Warnings []string `json:"warnings"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/events/posts", "u-1",
		map[string]string{"post_id": "p-1", "community_id": "c-1", "title": "Hola", "author_name": "Ana"}, &outcome))
	require.Empty(t, outcome.Warnings)
	require.NotNil(t, outcome.Achievement)
	require.EqualValues(t, 1, outcome.Achievement.Current)
	require.NotNil(t, outcome.Content)
	require.Equal(t, 1, outcome.Content.Audience)
	require.Equal(t, 1, outcome.Content.Result.Committed)

	var list struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/v1/notifications?limit=10", "u-2", nil, &list))
	require.Len(t, list.Notifications, 1)
	n := list.Notifications[0]
	require.Equal(t, models.NotificationNewPost, n.Type)
	require.False(t, n.IsRead)

	// Автор поста своё уведомление не получает.
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/v1/notifications", "u-1", nil, &list))
	require.Empty(t, list.Notifications)

	var read map[string]int64
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/notifications/read-all", "u-2", nil, &read))
	require.EqualValues(t, 1, read["updated"])

	// Чужое уведомление не удаляется.
	require.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/v1/notifications/"+n.ID, "u-1", nil, nil))
	require.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, "/v1/notifications/"+n.ID, "u-2", nil, nil))
	require.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, "/v1/notifications/"+n.ID, "u-2", nil, nil))

	var left service.MembershipResult
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/communities/c-1/leave", "u-2", nil, &left))
	require.Equal(t, service.MembershipResult{Changed: true, Members: 1}, left)

	require.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/v1/communities/missing/join", "u-2", nil, nil))
}

func TestRouter_Events_Errors(t *testing.T) {
	e := newEnv(t)

	var body errEnvelope
	require.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/v1/events/comments", "u-1",
		map[string]string{"post_id": ""}, &body))
	require.Equal(t, "invalid_event", body.Error.Code)

	require.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/v1/events/comments", "u-1",
		map[string]string{"post_id": "p-1", "unexpected": "x"}, &body))
	require.Equal(t, "invalid_argument", body.Error.Code)

	// Пост не найден: прогресс учтён, уведомление пропущено, ответ успешный с предупреждением.
	var outcome struct {
		service.EventOutcome
		Warnings []string `json:"warnings"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/events/comments", "u-1",
		map[string]string{"comment_id": "cm-1", "post_id": "missing"}, &outcome))
	require.NotNil(t, outcome.Achievement)
	require.Nil(t, outcome.Content)
	require.Equal(t, []string{"not_found"}, outcome.Warnings)
}

func TestRouter_Toggles(t *testing.T) {
	e := newEnv(t)

	var saved struct {
		Saved bool `json:"saved"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/saved-posts/p-1/toggle", "u-1", nil, &saved))
	require.True(t, saved.Saved)

	var posts map[string][]string
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/v1/saved-posts", "u-1", nil, &posts))
	require.Equal(t, []string{"p-1"}, posts["posts"])

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/saved-posts/p-1/toggle", "u-1", nil, &saved))
	require.False(t, saved.Saved)

	var liked struct {
		Liked bool `json:"liked"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/videos/v-1/likes/toggle", "u-1", nil, &liked))
	require.True(t, liked.Liked)

	var vote struct {
		Voted bool  `json:"voted"`
		Votes int64 `json:"votes"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/posts/p-1/votes/toggle", "u-1", nil, &vote))
	require.True(t, vote.Voted)
	require.EqualValues(t, 1, vote.Votes)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/posts/p-1/votes/toggle", "u-2", nil, &vote))
	require.EqualValues(t, 2, vote.Votes)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/posts/p-1/votes/toggle", "u-1", nil, &vote))
	require.False(t, vote.Voted)
	require.EqualValues(t, 1, vote.Votes)
}

func TestRouter_Achievements(t *testing.T) {
	e := newEnv(t)

	var out map[string][]models.Achievement
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/v1/achievements", "u-1", nil, &out))
	require.Len(t, out["achievements"], len(models.Metrics))
	for _, a := range out["achievements"] {
		require.EqualValues(t, 0, a.Current)
		require.EqualValues(t, 1, a.Level)
	}

	require.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/v1/notifications?limit=-1", "u-1", nil, nil))
}

func TestRouter_Admin(t *testing.T) {
	e := newEnv(t)

	require.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/v1/communities", "u-owner",
		map[string]string{"id": "c-1", "title": "Go"}, nil))
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/communities/c-1/join", "u-1", nil, nil))

	require.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/v1/admin/communities/c-1/reconcile", "u-1", nil, nil))

	// Счётчик разошёлся со множеством участников.
	require.NoError(t, e.store.SetMembersCount(context.Background(), "c-1", 7))

	var rec struct {
		Members  int64 `json:"members"`
		Repaired bool  `json:"repaired"`
	}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/admin/communities/c-1/reconcile", "u-admin", nil, &rec))
	require.EqualValues(t, 1, rec.Members)
	require.True(t, rec.Repaired)

	var body errEnvelope
	require.Equal(t, http.StatusNotImplemented, e.do(t, http.MethodPost, "/v1/admin/dead-letters/replay", "u-admin", nil, &body))
	require.Equal(t, "not_configured", body.Error.Code)
}

func TestRouter_WatchNotifications(t *testing.T) {
	e := newEnv(t)
	e.store.PutPost(models.Post{ID: "p-1", AuthorID: "u-1", Title: "Hola"})

	wsURL := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/v1/watch/notifications?access_token=" + token(t, "u-1")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	read := func() watch.Snapshot {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var snap watch.Snapshot
		require.NoError(t, conn.ReadJSON(&snap))
		return snap
	}

	first := read()
	require.Equal(t, models.ChangeNotifications, first.Kind)
	require.EqualValues(t, 1, first.Seq)
	require.Empty(t, first.Notifications)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/v1/events/comments", "u-2",
		map[string]string{"comment_id": "cm-1", "post_id": "p-1", "author_name": "Beto"}, nil))

	next := read()
	require.Greater(t, next.Seq, first.Seq)
	require.Len(t, next.Notifications, 1)
	require.Equal(t, models.NotificationNewComment, next.Notifications[0].Type)
	require.Equal(t, "u-2", next.Notifications[0].FromUserID)
}

func TestRouter_WatchRequiresToken(t *testing.T) {
	e := newEnv(t)

	wsURL := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/v1/watch/achievements"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
