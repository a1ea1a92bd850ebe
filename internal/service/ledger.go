package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// ToggleSavedPost переключает postID в savedPosts/{userID}. Возвращает новое состояние:
// true — пост сохранён.
func (s *Service) ToggleSavedPost(ctx context.Context, userID, postID string) (bool, error) {
	return s.toggleSet(ctx, models.SetSavedPosts, userID, postID)
}

// ToggleVideoLike переключает лайк userID в videos/{videoID}.likes.
// Возвращает новое состояние: true — видео лайкнуто.
func (s *Service) ToggleVideoLike(ctx context.Context, userID, videoID string) (bool, error) {
	return s.toggleSet(ctx, models.SetVideoLikes, videoID, userID)
}

// toggleSet — переключение элемента множества через compare-and-swap по версии.
// Документ множества создаётся при первом переключении.
// Конкурентные переключения не теряются: проигравший перечитывает множество.
func (s *Service) toggleSet(ctx context.Context, kind models.SetKind, owner, member string) (bool, error) {
	op := "service/ledger/toggle_" + string(kind)

	owner = strings.TrimSpace(owner)
	member = strings.TrimSpace(member)
	lg := log.From(ctx).With("op", op, "owner", owner, "member", member)

	if owner == "" || member == "" {
		lg.Warn("invalid argument: empty owner or member")
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	retries := s.cfg.Progression.CASRetries
	if retries <= 0 {
		retries = 1
	}

	for attempt := 1; attempt <= retries; attempt++ {
		set, err := s.storage.MemberSet(ctx, kind, owner)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrNotFound):
			set = &models.MemberSet{Kind: kind, Owner: owner}
		default:
			lg.Error("storage error on MemberSet", "err", err)
			return false, readErr(op, err)
		}

		next, state := set.Toggle(member)
		expected := set.Version
		next.Version = expected + 1

		err = s.storage.SwapMemberSet(ctx, expected, next)
		switch {
		case err == nil:
			s.metrics.Toggle(string(kind), state)
			return state, nil
		case errors.Is(err, storage.ErrConflict):
			s.metrics.CASConflict(string(kind))
			lg.Debug("member set cas conflict, retrying", "attempt", attempt)
		default:
			lg.Error("storage error on SwapMemberSet", "err", err)
			return false, writeErr(op, err)
		}
	}

	lg.Error("member set cas retries exhausted", "retries", retries)
	return false, fmt.Errorf("%s: cas retries exhausted: %w: %w", op, ErrStorageWrite, storage.ErrConflict)
}

// SavedPosts — идентификаторы постов, сохранённых пользователем.
func (s *Service) SavedPosts(ctx context.Context, userID string) ([]string, error) {
	const op = "service/ledger/SavedPosts"

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	set, err := s.storage.MemberSet(ctx, models.SetSavedPosts, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []string{}, nil
		}

		log.From(ctx).Error("storage error on MemberSet", "op", op, "user_id", userID, "err", err)
		return nil, readErr(op, err)
	}

	return set.Members, nil
}

// ToggleVote переключает голос userID за пост в реестре votos.
// Возвращает новое состояние: true — голос поставлен.
func (s *Service) ToggleVote(ctx context.Context, userID, postID string) (bool, error) {
	const op = "service/ledger/ToggleVote"

	userID = strings.TrimSpace(userID)
	postID = strings.TrimSpace(postID)
	lg := log.From(ctx).With("op", op, "user_id", userID, "post_id", postID)

	if userID == "" || postID == "" {
		lg.Warn("invalid argument: empty user_id or post_id")
		return false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	retries := s.cfg.Progression.CASRetries
	if retries <= 0 {
		retries = 1
	}

	// Голос — запись-существование: удалили, значит был; иначе создаём.
	// Гонка двух переключений проявляется как ErrNotFound/ErrConflict и повторяется.
	for attempt := 1; attempt <= retries; attempt++ {
		err := s.storage.DeleteVote(ctx, postID, userID)
		if err == nil {
			s.metrics.Toggle("vote", false)
			return false, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Error("storage error on DeleteVote", "err", err)
			return false, writeErr(op, err)
		}

		err = s.storage.PutVote(ctx, models.Vote{PostID: postID, UserID: userID, CreatedAt: s.now()})
		if err == nil {
			s.metrics.Toggle("vote", true)
			return true, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			lg.Error("storage error on PutVote", "err", err)
			return false, writeErr(op, err)
		}

		s.metrics.CASConflict("vote")
		lg.Debug("vote toggle raced, retrying", "attempt", attempt)
	}

	lg.Error("vote toggle retries exhausted", "retries", retries)
	return false, fmt.Errorf("%s: retries exhausted: %w: %w", op, ErrStorageWrite, storage.ErrConflict)
}

// VoteCount — число голосов за пост.
func (s *Service) VoteCount(ctx context.Context, postID string) (int64, error) {
	const op = "service/ledger/VoteCount"

	postID = strings.TrimSpace(postID)
	if postID == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	n, err := s.storage.CountVotes(ctx, postID)
	if err != nil {
		log.From(ctx).Error("storage error on CountVotes", "op", op, "post_id", postID, "err", err)
		return 0, readErr(op, err)
	}

	return n, nil
}
