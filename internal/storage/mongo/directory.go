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

// PostByID возвращает пост или storage.ErrNotFound.
func (m *Mongo) PostByID(ctx context.Context, id string) (*models.Post, error) {
	const op = "storage/mongo/PostByID"

	var p models.Post
	if err := m.posts.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

// CommunityByID возвращает сообщество или storage.ErrNotFound.
func (m *Mongo) CommunityByID(ctx context.Context, id string) (*models.Community, error) {
	const op = "storage/mongo/CommunityByID"

	var c models.Community
	if err := m.communities.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// CommunityMembers — пользователи, у которых communitiesJoined содержит communityID.
// Равенство по полю-массиву в MongoDB означает «массив содержит значение».
func (m *Mongo) CommunityMembers(ctx context.Context, communityID string) ([]string, error) {
	const op = "storage/mongo/CommunityMembers"

	return m.userIDs(ctx, op, bson.D{{Key: "communitiesJoined", Value: communityID}})
}

// userIDs выбирает только _id документов users по фильтру.
func (m *Mongo) userIDs(ctx context.Context, op string, filter bson.D) ([]string, error) {
	cur, err := m.users.Find(ctx, filter, options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		ids = append(ids, row.ID)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return ids, nil
}
