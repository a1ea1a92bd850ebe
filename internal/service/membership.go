package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
	"github.com/pribylovaa/forum-engagement/pkg/log"
)

// MembershipResult — итог вступления/выхода.
// Changed=false — пользователь уже был (или уже не был) участником, счётчик не тронут.
type MembershipResult struct {
	Changed bool  `json:"changed"`
	Members int64 `json:"members"`
}

// CreateCommunityInput — создание сообщества. Пустой ID генерируется.
type CreateCommunityInput struct {
	ID          string
	Title       string
	Description string
	BannerURL   string
	CreatorID   string
}

// CreateCommunity создаёт сообщество с нулевым счётчиком участников.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустые Title или CreatorID, либо ID уже занят;
//   - ErrStorageWrite — иные ошибки хранилища.
func (s *Service) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	const op = "service/membership/CreateCommunity"

	in.Title = strings.TrimSpace(in.Title)
	in.CreatorID = strings.TrimSpace(in.CreatorID)
	lg := log.From(ctx).With("op", op, "creator_id", in.CreatorID)

	if in.Title == "" || in.CreatorID == "" {
		lg.Warn("invalid argument: empty title or creator_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c := models.Community{
		ID:           strings.TrimSpace(in.ID),
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		BannerURL:    strings.TrimSpace(in.BannerURL),
		CreatorID:    in.CreatorID,
		MembersCount: 0,
		CreatedAt:    s.now(),
	}
	if c.ID == "" {
		c.ID = s.newID()
	}

	if err := s.storage.CreateCommunity(ctx, c); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			lg.Warn("community already exists", "community_id", c.ID)
			return nil, fmt.Errorf("%s: community %q exists: %w", op, c.ID, ErrInvalidArgument)
		}

		lg.Error("storage error on CreateCommunity", "err", err)
		return nil, writeErr(op, err)
	}

	lg.Info("community created", "community_id", c.ID)
	return &c, nil
}

// Join — вступление пользователя в сообщество.
//
// Сообщество добавляется в users.communitiesJoined; счётчик miembrosCount
// увеличивается на 1 только если множество действительно изменилось.
// Обе записи выполняются одной транзакцией, если она включена (db.transactions),
// иначе расхождение устраняет ReconcileMembers.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустые идентификаторы;
//   - ErrNotFound — сообщество не существует;
//   - ErrStorageWrite — ошибки хранилища.
func (s *Service) Join(ctx context.Context, userID, communityID string) (MembershipResult, error) {
	return s.changeMembership(ctx, "join", userID, communityID, s.storage.Join)
}

// Leave — выход пользователя из сообщества, зеркально Join.
func (s *Service) Leave(ctx context.Context, userID, communityID string) (MembershipResult, error) {
	return s.changeMembership(ctx, "leave", userID, communityID, s.storage.Leave)
}

type membershipFunc func(ctx context.Context, userID, communityID string) (bool, error)

func (s *Service) changeMembership(ctx context.Context, action, userID, communityID string, apply membershipFunc) (MembershipResult, error) {
	op := "service/membership/" + action

	userID = strings.TrimSpace(userID)
	communityID = strings.TrimSpace(communityID)
	lg := log.From(ctx).With("op", op, "user_id", userID, "community_id", communityID)

	if userID == "" || communityID == "" {
		lg.Warn("invalid argument: empty user_id or community_id")
		return MembershipResult{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	retries := s.cfg.Progression.CASRetries
	if retries <= 0 {
		retries = 1
	}

	var (
		changed bool
		err     error
	)
	for attempt := 1; attempt <= retries; attempt++ {
		changed, err = apply(ctx, userID, communityID)
		if !errors.Is(err, storage.ErrConflict) {
			break
		}

		s.metrics.CASConflict("membership")
		lg.Debug("membership write conflict, retrying", "attempt", attempt)
	}

	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("community not found")
			return MembershipResult{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on "+action, "err", err)
		return MembershipResult{}, writeErr(op, err)
	}

	s.metrics.Membership(action, changed)

	res := MembershipResult{Changed: changed}

	c, err := s.storage.CommunityByID(ctx, communityID)
	if err != nil {
		// Запись уже выполнена, счётчик для ответа необязателен.
		lg.Warn("community re-read failed", "err", err)
		return res, nil
	}

	res.Members = c.MembersCount
	return res, nil
}

// ReconcileMembers пересчитывает miembrosCount по авторитетным множествам
// участников и перезаписывает счётчик при расхождении.
// Возвращает актуальное значение и признак исправления.
func (s *Service) ReconcileMembers(ctx context.Context, communityID string) (int64, bool, error) {
	const op = "service/membership/ReconcileMembers"

	communityID = strings.TrimSpace(communityID)
	lg := log.From(ctx).With("op", op, "community_id", communityID)

	if communityID == "" {
		lg.Warn("invalid argument: empty community_id")
		return 0, false, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	c, err := s.storage.CommunityByID(ctx, communityID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			lg.Error("storage error on CommunityByID", "err", err)
		}
		return 0, false, readErr(op, err)
	}

	actual, err := s.storage.CountMembers(ctx, communityID)
	if err != nil {
		lg.Error("storage error on CountMembers", "err", err)
		return 0, false, readErr(op, err)
	}

	if actual == c.MembersCount {
		return actual, false, nil
	}

	if err := s.storage.SetMembersCount(ctx, communityID, actual); err != nil {
		lg.Error("storage error on SetMembersCount", "err", err)
		return 0, false, writeErr(op, err)
	}

	s.metrics.DriftRepaired()
	lg.Warn("member count drift repaired", "stored", c.MembersCount, "actual", actual)

	return actual, true, nil
}

// ReconcileAll сверяет все сообщества. Ошибки отдельных сообществ
// логируются и возвращаются вместе; возвращает число исправленных.
func (s *Service) ReconcileAll(ctx context.Context) (int, error) {
	const op = "service/membership/ReconcileAll"

	ids, err := s.storage.CommunityIDs(ctx)
	if err != nil {
		log.From(ctx).Error("storage error on CommunityIDs", "op", op, "err", err)
		return 0, readErr(op, err)
	}

	repaired := 0
	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		_, fixed, err := s.ReconcileMembers(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if fixed {
			repaired++
		}
	}

	return repaired, errors.Join(errs...)
}

// RunReconciler периодически запускает ReconcileAll, пока ctx не отменён.
func (s *Service) RunReconciler(ctx context.Context, interval time.Duration) {
	const op = "service/membership/RunReconciler"

	lg := log.From(ctx).With("op", op)
	if interval <= 0 {
		lg.Info("reconciler disabled")
		return
	}

	lg.Info("reconciler started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lg.Info("reconciler stopped")
			return
		case <-ticker.C:
			repaired, err := s.ReconcileAll(ctx)
			if err != nil && ctx.Err() == nil {
				lg.Error("reconcile pass failed", "repaired", repaired, "err", err)
				continue
			}
			if repaired > 0 {
				lg.Info("reconcile pass done", "repaired", repaired)
			}
		}
	}
}
