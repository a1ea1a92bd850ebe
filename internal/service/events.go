package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// PostCreated — пост уже создан вызывающей стороной.
// Пустой CommunityID — пост в глобальной ленте.
type PostCreated struct {
	PostID      string `json:"post_id"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name"`
	CommunityID string `json:"community_id"`
	Title       string `json:"title"`
}

// CommentCreated — комментарий уже создан вызывающей стороной.
type CommentCreated struct {
	CommentID  string `json:"comment_id"`
	PostID     string `json:"post_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
}

// Delivery — итог рассылки одного события.
type Delivery struct {
	Audience int            `json:"audience"`
	Result   DispatchResult `json:"result"`
	Enqueued int            `json:"enqueued"`
}

// EventOutcome — что удалось сделать по событию создания контента.
type EventOutcome struct {
	Achievement *AchievementResult `json:"achievement,omitempty"`
	LevelUp     *Delivery          `json:"level_up,omitempty"`
	Content     *Delivery          `json:"content,omitempty"`
}

// OnPostCreated — обработка создания поста: прогресс по метрике posts,
// уведомление о повышении уровня и рассылка участникам сообщества.
//
// Создание поста этим вызовом не отменяется: каждая стадия выполняется
// независимо, ошибки логируются и возвращаются вместе (errors.Join)
// рядом с заполненным EventOutcome.
// Отмена ctx вызывающим (обрыв соединения, дедлайн запроса) обработку не прерывает.
func (s *Service) OnPostCreated(ctx context.Context, in PostCreated) (EventOutcome, error) {
	const op = "service/events/OnPostCreated"

	ctx, cancel := s.detach(ctx)
	defer cancel()

	in.PostID = strings.TrimSpace(in.PostID)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.CommunityID = strings.TrimSpace(in.CommunityID)

	ctx = log.With(ctx, "post_id", in.PostID, "author_id", in.AuthorID)
	lg := log.From(ctx).With("op", op)

	if in.PostID == "" || in.AuthorID == "" {
		lg.Warn("invalid event: empty post_id or author_id")
		return EventOutcome{}, fmt.Errorf("%s: %w", op, ErrInvalidEvent)
	}

	var out EventOutcome
	var errs []error

	if err := s.progress(ctx, in.AuthorID, models.MetricPosts, &out); err != nil {
		errs = append(errs, err)
	}

	if in.CommunityID != "" {
		ev := models.Event{
			Type:        models.NotificationNewPost,
			UserID:      in.AuthorID,
			UserName:    in.AuthorName,
			PostID:      in.PostID,
			PostTitle:   in.Title,
			CommunityID: in.CommunityID,
		}

		community, err := s.storage.CommunityByID(ctx, in.CommunityID)
		if err != nil {
			lg.Warn("community lookup failed, skipping fan-out", "community_id", in.CommunityID, "err", err)
			errs = append(errs, readErr(op, err))
		} else {
			ev.CommunityName = community.Title

			d, err := s.deliverEvent(ctx, ev)
			out.Content = d
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	return out, errors.Join(errs...)
}

// OnCommentCreated — обработка нового комментария: прогресс по метрике comments,
// уведомление о повышении уровня и уведомление автору поста.
// Семантика ошибок как у OnPostCreated.
func (s *Service) OnCommentCreated(ctx context.Context, in CommentCreated) (EventOutcome, error) {
	const op = "service/events/OnCommentCreated"

	ctx, cancel := s.detach(ctx)
	defer cancel()

	in.PostID = strings.TrimSpace(in.PostID)
	in.AuthorID = strings.TrimSpace(in.AuthorID)

	ctx = log.With(ctx, "post_id", in.PostID, "author_id", in.AuthorID)
	lg := log.From(ctx).With("op", op)

	if in.PostID == "" || in.AuthorID == "" {
		lg.Warn("invalid event: empty post_id or author_id")
		return EventOutcome{}, fmt.Errorf("%s: %w", op, ErrInvalidEvent)
	}

	var out EventOutcome
	var errs []error

	if err := s.progress(ctx, in.AuthorID, models.MetricComments, &out); err != nil {
		errs = append(errs, err)
	}

	post, err := s.storage.PostByID(ctx, in.PostID)
	if err != nil {
		lg.Warn("post lookup failed, skipping notification", "err", err)
		errs = append(errs, readErr(op, err))
		return out, errors.Join(errs...)
	}

	ev := models.Event{
		Type:      models.NotificationNewComment,
		UserID:    in.AuthorID,
		UserName:  in.AuthorName,
		PostID:    post.ID,
		PostTitle: post.Title,
	}

	d, err := s.deliverEvent(ctx, ev)
	out.Content = d
	if err != nil {
		errs = append(errs, err)
	}

	return out, errors.Join(errs...)
}

// progress учитывает событие и при повышении уровня уведомляет пользователя.
func (s *Service) progress(ctx context.Context, userID string, metric models.Metric, out *EventOutcome) error {
	res, err := s.RecordEvent(ctx, userID, metric)
	if err != nil {
		return err
	}

	out.Achievement = &res
	if !res.LeveledUp {
		return nil
	}

	d, err := s.deliverEvent(ctx, models.Event{
		Type:   metric.LevelUpType(),
		UserID: userID,
		Level:  res.Level,
	})
	out.LevelUp = d

	return err
}

// deliverEvent считает аудиторию и доставляет уведомления согласно fanout.mode.
func (s *Service) deliverEvent(ctx context.Context, ev models.Event) (*Delivery, error) {
	audience, err := s.ResolveAudience(ctx, ev)
	if err != nil {
		return nil, err
	}

	d := &Delivery{Audience: len(audience)}
	if len(audience) == 0 {
		return d, nil
	}

	if s.cfg.Fanout.Mode == config.FanoutQueue && s.queue != nil {
		d.Enqueued, err = s.EnqueueFanout(ctx, ev, audience)
		return d, err
	}

	d.Result, err = s.Dispatch(ctx, ev, audience)
	return d, err
}
