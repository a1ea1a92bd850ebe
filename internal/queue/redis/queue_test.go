package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pribylovaa/forum-engagement/internal/models"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Интеграционные тесты очереди на реальном Redis.
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/queue/redis -v -race -count=1

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func newQueue(t *testing.T, prefix string) *Queue {
	t.Helper()
	url := startRedis(t)

	q, err := New(context.Background(), url, prefix, 200*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })

	return q
}

func item(id string) models.FanoutItem {
	return models.FanoutItem{
		ID:         id,
		Notification: models.Notification{ID: id, RecipientID: "u-" + id, Type: models.NotificationNewPost},
		EnqueuedAt: time.Unix(1_700_000_000, 0).UTC(),
	}
}

func TestNew_BadURL(t *testing.T) {
	t.Parallel()
	_, err := New(context.Background(), "://bad", "", time.Second)
	require.Error(t, err)
}

func TestQueue_EnqueueDequeueAck(t *testing.T) {
	q := newQueue(t, "t1:")
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, []models.FanoutItem{item("a"), item("b"), item("c")}))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	got, err := q.Dequeue(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "u-a", got[0].Notification.RecipientID)

	require.NoError(t, q.Ack(ctx, got))

	// После Ack в processing ничего не остаётся.
	recovered, err := q.RecoverInFlight(ctx)
	require.NoError(t, err)
	require.Zero(t, recovered)
}

func TestQueue_RequeueAndRecover(t *testing.T) {
	q := newQueue(t, "t2:")
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, []models.FanoutItem{item("a"), item("b")}))

	got, err := q.Dequeue(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got[0].Attempts = 1
	got[0].LastError = "write failed"
	require.NoError(t, q.Requeue(ctx, got))

	// b, затем повторный a.
	got, err = q.Dequeue(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "b", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Equal(t, 1, got[1].Attempts)

	// Имитация падения воркера: элементы остались в processing.
	recovered, err := q.RecoverInFlight(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, recovered)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestQueue_DequeueEmpty(t *testing.T) {
	q := newQueue(t, "t3:")

	got, err := q.Dequeue(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}
