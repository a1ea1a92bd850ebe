package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
)

func seedCommunity(t *testing.T, s *Service, id string, members ...string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.CreateCommunity(ctx, CreateCommunityInput{ID: id, Title: "Comunidad " + id, CreatorID: "creator"})
	require.NoError(t, err)

	for _, m := range members {
		_, err := s.Join(ctx, m, id)
		require.NoError(t, err)
	}
}

// new_post в сообществе {a, b, author} — аудитория {a, b}.
func TestResolveAudience_NewPostInCommunity(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)
	seedCommunity(t, s, "c1", "a", "b", "author")

	got, err := s.ResolveAudience(context.Background(), models.Event{
		Type: models.NotificationNewPost, UserID: "author", CommunityID: "c1", PostID: "p1",
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestResolveAudience_NewPostGlobalFeed(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)

	got, err := s.ResolveAudience(context.Background(), models.Event{
		Type: models.NotificationNewPost, UserID: "author", PostID: "p1",
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

// Комментарий автора к собственному посту — аудитория пуста.
func TestResolveAudience_SelfComment(t *testing.T) {
	t.Parallel()
	s, st := newMemoryService(t)
	st.PutPost(models.Post{ID: "p1", AuthorID: "author", Title: "Hola"})

	got, err := s.ResolveAudience(context.Background(), models.Event{
		Type: models.NotificationNewComment, UserID: "author", PostID: "p1",
	})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestResolveAudience_CommentNotifiesPostAuthor(t *testing.T) {
	t.Parallel()
	s, st := newMemoryService(t)
	st.PutPost(models.Post{ID: "p1", AuthorID: "author", Title: "Hola"})

	got, err := s.ResolveAudience(context.Background(), models.Event{
		Type: models.NotificationNewComment, UserID: "reader", PostID: "p1",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"author"}, got)
}

func TestResolveAudience_LevelUpTargetsUser(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)

	got, err := s.ResolveAudience(context.Background(), models.Event{
		Type: models.NotificationLevelUpPost, UserID: "u1", Level: 2,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, got)
}

func TestResolveAudience_Errors(t *testing.T) {
	s, ms, ctrl := newServiceWithMocks(t)
	defer ctrl.Finish()
	ctx := context.Background()

	_, err := s.ResolveAudience(ctx, models.Event{Type: "digest"})
	require.ErrorIs(t, err, ErrInvalidEvent)

	ms.EXPECT().PostByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
	_, err = s.ResolveAudience(ctx, models.Event{Type: models.NotificationNewComment, UserID: "u", PostID: "missing"})
	require.ErrorIs(t, err, ErrNotFound)

	ms.EXPECT().CommunityMembers(gomock.Any(), "c1").Return(nil, errors.New("boom"))
	_, err = s.ResolveAudience(ctx, models.Event{Type: models.NotificationNewPost, UserID: "u", CommunityID: "c1"})
	require.ErrorIs(t, err, ErrStorageRead)
}
