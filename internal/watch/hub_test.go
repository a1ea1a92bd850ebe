package watch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/models"
)

// fakeSource — состояние пользователя в памяти.
type fakeSource struct {
	mu    sync.Mutex
	notes map[string][]models.Notification
}

func newFakeSource() *fakeSource {
	return &fakeSource{notes: make(map[string][]models.Notification)}
}

func (f *fakeSource) add(userID, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[userID] = append([]models.Notification{{ID: id, RecipientID: userID}}, f.notes[userID]...)
}

func (f *fakeSource) ListNotifications(_ context.Context, recipientID string, _ int64) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification(nil), f.notes[recipientID]...), nil
}

func (f *fakeSource) Achievements(_ context.Context, userID string) ([]models.Achievement, error) {
	return []models.Achievement{{UserID: userID, Metric: models.MetricPosts, Goal: 5, Level: 1}}, nil
}

func newHub(t *testing.T) *Hub {
	t.Helper()
	h := New(NewBus())
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func next(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "channel closed")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
		return Snapshot{}
	}
}

func TestSubscribe_InitialAndUpdates(t *testing.T) {
	t.Parallel()
	h := newHub(t)
	src := newFakeSource()
	src.add("u1", "n1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := h.Subscribe(ctx, Query{Kind: models.ChangeNotifications, UserID: "u1"}, src)
	require.NoError(t, err)

	first := next(t, ch)
	require.EqualValues(t, 1, first.Seq)
	require.Len(t, first.Notifications, 1)

	// Чужое изменение снимка не порождает.
	src.add("u2", "other")
	h.Changed(ctx, models.ChangeNotifications, "u2")

	src.add("u1", "n2")
	h.Changed(ctx, models.ChangeNotifications, "u1")

	second := next(t, ch)
	require.EqualValues(t, 2, second.Seq)
	require.Len(t, second.Notifications, 2)
	require.Equal(t, "n2", second.Notifications[0].ID)
}

func TestSubscribe_Achievements(t *testing.T) {
	t.Parallel()
	h := newHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := h.Subscribe(ctx, Query{Kind: models.ChangeAchievements, UserID: "u1"}, newFakeSource())
	require.NoError(t, err)

	snap := next(t, ch)
	require.Equal(t, models.ChangeAchievements, snap.Kind)
	require.Len(t, snap.Achievements, 1)
	require.Nil(t, snap.Notifications)
}

func TestSubscribe_CancelClosesStream(t *testing.T) {
	t.Parallel()
	h := newHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := h.Subscribe(ctx, Query{Kind: models.ChangeNotifications, UserID: "u1"}, newFakeSource())
	require.NoError(t, err)
	next(t, ch)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return h.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSubscribe_InvalidQuery(t *testing.T) {
	t.Parallel()
	h := newHub(t)

	_, err := h.Subscribe(context.Background(), Query{Kind: models.ChangeNotifications}, newFakeSource())
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = h.Subscribe(context.Background(), Query{Kind: "posts", UserID: "u1"}, newFakeSource())
	require.ErrorIs(t, err, ErrInvalidQuery)
}

// Непрочитанный снимок вытесняется свежим, отправитель не блокируется.
func TestOffer_ReplacesStale(t *testing.T) {
	t.Parallel()
	out := make(chan Snapshot, 1)

	offer(out, Snapshot{Seq: 1})
	offer(out, Snapshot{Seq: 2})
	offer(out, Snapshot{Seq: 3})

	require.EqualValues(t, 3, (<-out).Seq)
	require.Empty(t, out)
}
