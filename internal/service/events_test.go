package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/models"
	queuemem "github.com/pribylovaa/forum-engagement/internal/queue/memory"
	"github.com/pribylovaa/forum-engagement/internal/storage/memory"
)

// ctxStorage — memory.Storage, который, как сетевое хранилище, отказывает
// на отменённом контексте.
type ctxStorage struct {
	*memory.Storage
}

func (c ctxStorage) SwapAchievement(ctx context.Context, expected int64, a models.Achievement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Storage.SwapAchievement(ctx, expected, a)
}

func (c ctxStorage) CommunityByID(ctx context.Context, id string) (*models.Community, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Storage.CommunityByID(ctx, id)
}

func (c ctxStorage) CommunityMembers(ctx context.Context, communityID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Storage.CommunityMembers(ctx, communityID)
}

func (c ctxStorage) InsertNotification(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Storage.InsertNotification(ctx, n)
}

func (c ctxStorage) InsertNotifications(ctx context.Context, batch []models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.Storage.InsertNotifications(ctx, batch)
}

func countByType(t *testing.T, s *Service, recipient string, typ models.NotificationType) int {
	t.Helper()
	list, err := s.ListNotifications(context.Background(), recipient, 300)
	require.NoError(t, err)

	n := 0
	for _, it := range list {
		if it.Type == typ {
			n++
		}
	}
	return n
}

func TestOnPostCreated_CommunityFanout(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)
	seedCommunity(t, s, "c1", "a", "b", "author")

	out, err := s.OnPostCreated(context.Background(), PostCreated{
		PostID: "p1", AuthorID: "author", AuthorName: "Ana", CommunityID: "c1", Title: "Hola",
	})
	require.NoError(t, err)

	require.NotNil(t, out.Achievement)
	require.EqualValues(t, 1, out.Achievement.Current)
	require.Nil(t, out.LevelUp)
	require.NotNil(t, out.Content)
	require.Equal(t, 2, out.Content.Audience)
	require.Equal(t, DispatchResult{Attempted: 2, Committed: 2}, out.Content.Result)

	require.Equal(t, 1, countByType(t, s, "a", models.NotificationNewPost))
	require.Equal(t, 1, countByType(t, s, "b", models.NotificationNewPost))
	require.Equal(t, 0, countByType(t, s, "author", models.NotificationNewPost))
}

// Клиент ушёл до начала обработки: прогресс и рассылка всё равно доводятся до конца.
func TestOnPostCreated_CallerCanceled(t *testing.T) {
	t.Parallel()
	seed, st := newMemoryService(t)
	members := audienceOf(1200)
	seedCommunity(t, seed, "c1", members...)

	s := New(ctxStorage{Storage: st}, testConfig(), WithClock(func() time.Time { return fixedNow }), WithIDGenerator(seqIDs()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := s.OnPostCreated(ctx, PostCreated{PostID: "p1", AuthorID: "author", CommunityID: "c1", Title: "Hola"})
	require.NoError(t, err)
	require.NotNil(t, out.Achievement)
	require.EqualValues(t, 1, out.Achievement.Current)
	require.NotNil(t, out.Content)
	require.Equal(t, DispatchResult{Attempted: 1200, Committed: 1200}, out.Content.Result)

	require.Equal(t, 1, countByType(t, s, members[0], models.NotificationNewPost))
	require.Equal(t, 1, countByType(t, s, members[1199], models.NotificationNewPost))
}

// Пятый пост поднимает уровень: автор получает level_up_post.
func TestOnPostCreated_LevelUpNotifiesAuthor(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)
	ctx := context.Background()

	var out EventOutcome
	var err error
	for i := 0; i < 5; i++ {
		out, err = s.OnPostCreated(ctx, PostCreated{PostID: "p", AuthorID: "author", Title: "t"})
		require.NoError(t, err)
	}

	require.True(t, out.Achievement.LeveledUp)
	require.NotNil(t, out.LevelUp)
	require.Nil(t, out.Content, "глобальная лента не рассылается")

	list, err := s.ListNotifications(ctx, "author", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.NotificationLevelUpPost, list[0].Type)
	require.EqualValues(t, 2, list[0].Level)
	require.Equal(t, "📝 Has subido al nivel 2", list[0].Message)
}

// Сообщество не найдено: прогресс учтён, ошибка возвращается рядом с результатом.
func TestOnPostCreated_MissingCommunity(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)

	out, err := s.OnPostCreated(context.Background(), PostCreated{PostID: "p1", AuthorID: "author", CommunityID: "nope"})
	require.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, out.Achievement)
	require.Nil(t, out.Content)
}

func TestOnPostCreated_InvalidEvent(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)

	_, err := s.OnPostCreated(context.Background(), PostCreated{PostID: " ", AuthorID: "a"})
	require.ErrorIs(t, err, ErrInvalidEvent)

	_, err = s.OnCommentCreated(context.Background(), CommentCreated{PostID: "p1"})
	require.ErrorIs(t, err, ErrInvalidEvent)
}

func TestOnCommentCreated_NotifiesPostAuthor(t *testing.T) {
	t.Parallel()
	s, st := newMemoryService(t)
	st.PutPost(models.Post{ID: "p1", AuthorID: "author", Title: "Mi post"})

	out, err := s.OnCommentCreated(context.Background(), CommentCreated{
		CommentID: "c1", PostID: "p1", AuthorID: "reader", AuthorName: "Luis",
	})
	require.NoError(t, err)
	require.Equal(t, 1, out.Content.Audience)

	list, err := s.ListNotifications(context.Background(), "author", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	n := list[0]
	require.Equal(t, models.NotificationNewComment, n.Type)
	require.Equal(t, `Luis comentó tu post "Mi post"`, n.Message)
	require.Equal(t, "p1", n.PostID)
	require.Equal(t, "Mi post", n.PostTitle)
	require.Equal(t, "reader", n.FromUserID)
	require.Equal(t, "Luis", n.FromUserName)
}

func TestOnCommentCreated_SelfCommentCreatesNothing(t *testing.T) {
	t.Parallel()
	s, st := newMemoryService(t)
	st.PutPost(models.Post{ID: "p1", AuthorID: "author", Title: "Mi post"})

	out, err := s.OnCommentCreated(context.Background(), CommentCreated{PostID: "p1", AuthorID: "author"})
	require.NoError(t, err)
	require.Equal(t, 0, out.Content.Audience)

	list, err := s.ListNotifications(context.Background(), "author", 10)
	require.NoError(t, err)
	require.Empty(t, list)
}

// Конкурентные комментарии на пороге уровня: ровно одно уведомление level_up_comment.
func TestOnCommentCreated_ConcurrentSingleLevelUpNotification(t *testing.T) {
	t.Parallel()
	s, st := newMemoryService(t)
	ctx := context.Background()
	st.PutPost(models.Post{ID: "p1", AuthorID: "u1", Title: "Mi post"})

	require.NoError(t, st.SwapAchievement(ctx, 0, models.Achievement{
		UserID: "u1", Metric: models.MetricComments, Current: 9, Goal: 10, Level: 1, Version: 1,
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.OnCommentCreated(ctx, CommentCreated{PostID: "p1", AuthorID: "u1"}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, countByType(t, s, "u1", models.NotificationLevelUpComment))
}

// В режиме queue события ставятся в очередь, а не пишутся синхронно.
func TestOnPostCreated_QueueMode(t *testing.T) {
	t.Parallel()
	q := queuemem.New(10 * time.Millisecond)
	s, _ := newMemoryService(t, WithQueue(q))
	s.cfg.Fanout.Mode = "queue"
	seedCommunity(t, s, "c1", "a", "b")

	out, err := s.OnPostCreated(context.Background(), PostCreated{PostID: "p1", AuthorID: "author", CommunityID: "c1"})
	require.NoError(t, err)
	require.Equal(t, 2, out.Content.Enqueued)
	require.Equal(t, DispatchResult{}, out.Content.Result)
	require.Equal(t, 2, q.Len())
}
