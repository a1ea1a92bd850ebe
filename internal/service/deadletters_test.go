package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/forum-engagement/internal/models"
	queuemem "github.com/pribylovaa/forum-engagement/internal/queue/memory"
	"github.com/pribylovaa/forum-engagement/mocks"
)

func letters(ids ...string) []models.DeadLetter {
	out := make([]models.DeadLetter, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.DeadLetter{
			ItemID:       id,
			RecipientID:  "r-" + id,
			Notification: models.Notification{ID: id, RecipientID: "r-" + id, Type: models.NotificationNewComment},
			Attempts:     5,
			LastError:    "timeout",
		})
	}
	return out
}

func TestReplayDeadLetters_ToQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	md := mocks.NewMockDeadLetterStorage(ctrl)
	q := queuemem.New(0)
	s, _ := newMemoryService(t, WithQueue(q), WithDeadLetters(md))

	md.EXPECT().ListDeadLetters(gomock.Any(), 500).Return(letters("a", "b"), nil)
	md.EXPECT().DeleteDeadLetters(gomock.Any(), []string{"a", "b"}).Return(nil)

	n, err := s.ReplayDeadLetters(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 2, q.Len())

	items, err := q.Dequeue(context.Background(), 10)
	require.NoError(t, err)
	require.Zero(t, items[0].Attempts)
}

func TestReplayDeadLetters_Inline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	md := mocks.NewMockDeadLetterStorage(ctrl)
	s, st := newMemoryService(t, WithDeadLetters(md))
	ctx := context.Background()

	// "a" уже доставлено ранее: повтор ID считается успехом.
	require.NoError(t, st.InsertNotification(ctx, letters("a")[0].Notification))

	md.EXPECT().ListDeadLetters(gomock.Any(), 10).Return(letters("a", "b"), nil)
	md.EXPECT().DeleteDeadLetters(gomock.Any(), []string{"a", "b"}).Return(nil)

	n, err := s.ReplayDeadLetters(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	list, err := st.ListNotifications(ctx, "r-b", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestReplayDeadLetters_Errors(t *testing.T) {
	t.Parallel()
	s, _ := newMemoryService(t)

	_, err := s.ReplayDeadLetters(context.Background(), 10)
	require.ErrorIs(t, err, ErrNotConfigured)

	ctrl := gomock.NewController(t)
	md := mocks.NewMockDeadLetterStorage(ctrl)
	s.deadLetters = md

	md.EXPECT().ListDeadLetters(gomock.Any(), 10).Return(nil, errors.New("pg down"))
	_, err = s.ListDeadLetters(context.Background(), 10)
	require.ErrorIs(t, err, ErrStorageRead)
}
