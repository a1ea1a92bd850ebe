package service

// Тесты сервисного слоя engagement-service.
//
//  Проверяем:
//  - машину состояний уровней и compare-and-swap при конкурентной записи;
//  - правила аудитории и рассылку пачками не больше потолка хранилища;
//  - членство в сообществах и сверку производного счётчика;
//  - реестр переключателей (сохранённое, лайки, голоса);
//  - маппинг ошибок storage -> service.
//
// Большая часть тестов идёт на хранилище в памяти (тот же потолок пачки 500),
// сценарии отказов — на моках:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//   mockgen -source=./internal/service/service.go -destination=./mocks/service.go -package=mocks
//
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage/memory"
	"github.com/pribylovaa/forum-engagement/mocks"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// testConfig — конфигурация с продуктовыми правилами прогресса.
func testConfig() config.Config {
	return config.Config{
		Progression: config.ProgressionConfig{
			Posts:      config.ProgressionRule{Goal: 5, Increment: 5},
			Comments:   config.ProgressionRule{Goal: 10, Increment: 10},
			CASRetries: 64,
		},
		Fanout: config.FanoutConfig{
			Mode:         config.FanoutInline,
			BatchCeiling: config.MaxBatchCeiling,
			Workers:      2,
			MaxAttempts:  3,
			PollTimeout:  20 * time.Millisecond,
			RetryBackoff: time.Millisecond,
		},
		Limits: config.LimitsConfig{Default: 20, Max: 300},
	}
}

// seqIDs — предсказуемые идентификаторы уведомлений.
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("n-%05d", n)
	}
}

// newMemoryService — сервис поверх хранилища в памяти.
func newMemoryService(t *testing.T, opts ...Option) (*Service, *memory.Storage) {
	t.Helper()
	st := memory.New()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithIDGenerator(seqIDs())}, opts...)
	return New(st, testConfig(), opts...), st
}

// newServiceWithMocks — сервис с моками хранилища.
func newServiceWithMocks(t *testing.T, opts ...Option) (*Service, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow }), WithIDGenerator(seqIDs())}, opts...)
	s := New(ms, testConfig(), opts...)
	return s, ms, ctrl
}

// recorder — ChangeNotifier, запоминающий сигналы.
type recorder struct {
	mu    sync.Mutex
	calls map[models.ChangeKind][]string
}

func newRecorder() *recorder {
	return &recorder{calls: make(map[models.ChangeKind][]string)}
}

func (r *recorder) Changed(_ context.Context, kind models.ChangeKind, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[kind] = append(r.calls[kind], key)
}

func (r *recorder) keys(kind models.ChangeKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls[kind]...)
}

func audienceOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("u-%04d", i)
	}
	return out
}

func TestChunk(t *testing.T) {
	t.Parallel()

	require.Empty(t, chunk([]int{}, 500))

	parts := chunk(make([]int, 1200), 500)
	require.Len(t, parts, 3)
	require.Len(t, parts[0], 500)
	require.Len(t, parts[1], 500)
	require.Len(t, parts[2], 200)

	require.Len(t, chunk(make([]int, 500), 500), 1)
}

func TestUniqueExcept(t *testing.T) {
	t.Parallel()
	got := uniqueExcept([]string{"a", "b", "", "a", "author", "c"}, "author")
	require.ElementsMatch(t, []string{"a", "b", "c"}, got)
}
