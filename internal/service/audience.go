package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// ResolveAudience — множество получателей уведомления о событии.
//
// Правила:
//   - new_post в сообществе: участники сообщества (обратный запрос по
//     users.communitiesJoined) без автора;
//   - new_post без сообщества (глобальная лента): никого;
//   - new_comment: автор поста, если он не автор комментария;
//   - level_up_*: сам пользователь, поднявший уровень.
//
// Результат — множество без повторов, порядок не определён.
func (s *Service) ResolveAudience(ctx context.Context, ev models.Event) ([]string, error) {
	const op = "service/audience/ResolveAudience"

	lg := log.From(ctx).With("op", op, "type", string(ev.Type), "user_id", ev.UserID)

	if !ev.Type.Valid() {
		lg.Warn("invalid event: unknown type")
		return nil, fmt.Errorf("%s: type %q: %w", op, ev.Type, ErrInvalidEvent)
	}

	switch ev.Type {
	case models.NotificationNewPost:
		if strings.TrimSpace(ev.CommunityID) == "" {
			return nil, nil
		}

		members, err := s.storage.CommunityMembers(ctx, ev.CommunityID)
		if err != nil {
			lg.Error("storage error on CommunityMembers", "community_id", ev.CommunityID, "err", err)
			return nil, readErr(op, err)
		}

		return uniqueExcept(members, ev.UserID), nil

	case models.NotificationNewComment:
		if strings.TrimSpace(ev.PostID) == "" {
			lg.Warn("invalid event: empty post_id")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidEvent)
		}

		post, err := s.storage.PostByID(ctx, ev.PostID)
		if err != nil {
			lg.Warn("post lookup failed", "post_id", ev.PostID, "err", err)
			return nil, readErr(op, err)
		}

		return uniqueExcept([]string{post.AuthorID}, ev.UserID), nil

	default:
		return uniqueExcept([]string{ev.UserID}, ""), nil
	}
}

// uniqueExcept убирает пустые значения, повторы и exclude.
func uniqueExcept(ids []string, exclude string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if id == "" || id == exclude {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
