package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateCommunity создаёт сообщество с нулевым счётчиком участников.
func (m *Mongo) CreateCommunity(ctx context.Context, c models.Community) error {
	const op = "storage/mongo/CreateCommunity"

	c.MembersCount = 0
	if _, err := m.communities.InsertOne(ctx, c); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Join — $addToSet в users.communitiesJoined и $inc miembrosCount на 1.
// Счётчик меняется, только если множество действительно изменилось.
// При db.transactions=true обе записи идут одной транзакцией; иначе это две
// атомарные записи подряд, и сбой между ними исправляет ReconcileMembers.
func (m *Mongo) Join(ctx context.Context, userID, communityID string) (bool, error) {
	const op = "storage/mongo/Join"

	changed, err := m.inTx(ctx, func(ctx context.Context) (bool, error) {
		if err := m.communityExists(ctx, communityID); err != nil {
			return false, err
		}

		changed, err := m.addToJoined(ctx, userID, communityID)
		if err != nil || !changed {
			return false, err
		}

		return true, m.incMembers(ctx, communityID, 1)
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return changed, nil
}

// Leave — $pull из users.communitiesJoined и $inc miembrosCount на -1 при изменении.
func (m *Mongo) Leave(ctx context.Context, userID, communityID string) (bool, error) {
	const op = "storage/mongo/Leave"

	changed, err := m.inTx(ctx, func(ctx context.Context) (bool, error) {
		if err := m.communityExists(ctx, communityID); err != nil {
			return false, err
		}

		res, err := m.users.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: userID}, {Key: "communitiesJoined", Value: communityID}},
			bson.D{{Key: "$pull", Value: bson.D{{Key: "communitiesJoined", Value: communityID}}}},
		)
		if err != nil {
			return false, fmt.Errorf("pull: %w", err)
		}

		if res.ModifiedCount == 0 {
			return false, nil
		}

		return true, m.incMembers(ctx, communityID, -1)
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return changed, nil
}

// addToJoined добавляет communityID пользователю; профиль создаётся, если его ещё нет.
func (m *Mongo) addToJoined(ctx context.Context, userID, communityID string) (bool, error) {
	res, err := m.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}, {Key: "communitiesJoined", Value: bson.D{{Key: "$ne", Value: communityID}}}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "communitiesJoined", Value: communityID}}}},
	)
	if err != nil {
		return false, fmt.Errorf("add to set: %w", err)
	}

	if res.ModifiedCount == 1 {
		return true, nil
	}

	// Фильтр не совпал: либо пользователь уже участник, либо профиля нет.
	n, err := m.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: userID}})
	if err != nil {
		return false, fmt.Errorf("count user: %w", err)
	}

	if n > 0 {
		return false, nil
	}

	_, err = m.users.InsertOne(ctx, models.User{ID: userID, CommunitiesJoined: []string{communityID}})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			// Профиль создали параллельно: вызывающий может повторить Join.
			return false, storage.ErrConflict
		}

		return false, fmt.Errorf("insert user: %w", err)
	}

	return true, nil
}

func (m *Mongo) incMembers(ctx context.Context, communityID string, delta int64) error {
	res, err := m.communities.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: communityID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "miembrosCount", Value: delta}}}},
	)
	if err != nil {
		return fmt.Errorf("inc members: %w", err)
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (m *Mongo) communityExists(ctx context.Context, communityID string) error {
	err := m.communities.FindOne(ctx,
		bson.D{{Key: "_id", Value: communityID}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	).Err()
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return storage.ErrNotFound
	}

	return err
}

// CountMembers считает участников по авторитетным множествам пользователей.
func (m *Mongo) CountMembers(ctx context.Context, communityID string) (int64, error) {
	const op = "storage/mongo/CountMembers"

	if err := m.communityExists(ctx, communityID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := m.users.CountDocuments(ctx, bson.D{{Key: "communitiesJoined", Value: communityID}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// SetMembersCount перезаписывает miembrosCount.
func (m *Mongo) SetMembersCount(ctx context.Context, communityID string, n int64) error {
	const op = "storage/mongo/SetMembersCount"

	res, err := m.communities.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: communityID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "miembrosCount", Value: n}}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CommunityIDs возвращает идентификаторы всех сообществ.
func (m *Mongo) CommunityIDs(ctx context.Context) ([]string, error) {
	const op = "storage/mongo/CommunityIDs"

	ids, err := m.communities.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}

	return out, nil
}
