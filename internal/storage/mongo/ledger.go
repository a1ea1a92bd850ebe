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

// setLayout — где в документе лежит множество и его версия.
type setLayout struct {
	coll    *mongodriver.Collection
	field   string
	version string
}

func (m *Mongo) layout(kind models.SetKind) (setLayout, error) {
	switch kind {
	case models.SetSavedPosts:
		return setLayout{coll: m.savedPosts, field: "posts", version: "version"}, nil
	case models.SetVideoLikes:
		// videos/{id} содержит и другие поля видео, поэтому версия лайков отдельная.
		return setLayout{coll: m.videos, field: "likes", version: "likesVersion"}, nil
	default:
		return setLayout{}, fmt.Errorf("unknown set kind %q", kind)
	}
}

// MemberSet читает множество владельца. Документ без поля версии (создан до
// появления CAS) возвращается с Version == 0.
func (m *Mongo) MemberSet(ctx context.Context, kind models.SetKind, owner string) (*models.MemberSet, error) {
	const op = "storage/mongo/MemberSet"

	l, err := m.layout(kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var raw bson.M
	if err := l.coll.FindOne(ctx, bson.D{{Key: "_id", Value: owner}}).Decode(&raw); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	set := &models.MemberSet{Kind: kind, Owner: owner}
	if arr, ok := raw[l.field].(bson.A); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				set.Members = append(set.Members, s)
			}
		}
	}

	switch v := raw[l.version].(type) {
	case int64:
		set.Version = v
	case int32:
		set.Version = int64(v)
	}

	return set, nil
}

// SwapMemberSet — compare-and-swap по полю версии.
// expected == 0 создаёт документ (или дописывает множество в документ без версии).
func (m *Mongo) SwapMemberSet(ctx context.Context, expected int64, set models.MemberSet) error {
	const op = "storage/mongo/SwapMemberSet"

	l, err := m.layout(set.Kind)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	members := set.Members
	if members == nil {
		members = []string{}
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: l.field, Value: members},
		{Key: l.version, Value: set.Version},
	}}}

	if expected == 0 {
		filter := bson.D{{Key: "_id", Value: set.Owner}, {Key: l.version, Value: bson.D{{Key: "$exists", Value: false}}}}
		_, err := l.coll.UpdateOne(ctx, filter, update, upsert())
		if err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return fmt.Errorf("%s: %w", op, storage.ErrConflict)
			}

			return fmt.Errorf("%s: upsert: %w", op, err)
		}

		return nil
	}

	res, err := l.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: set.Owner}, {Key: l.version, Value: expected}}, update)
	if err != nil {
		return fmt.Errorf("%s: update: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}

	return nil
}

func upsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

// voteDoc — документ votos с ключом "{postId}/{uid}".
type voteDoc struct {
	ID          string `bson:"_id"`
	models.Vote `bson:",inline"`
}

// PutVote создаёт голос; повтор — storage.ErrConflict.
func (m *Mongo) PutVote(ctx context.Context, v models.Vote) error {
	const op = "storage/mongo/PutVote"

	if _, err := m.votes.InsertOne(ctx, voteDoc{ID: models.VoteKey(v.PostID, v.UserID), Vote: v}); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteVote удаляет голос; если его не было — storage.ErrNotFound.
func (m *Mongo) DeleteVote(ctx context.Context, postID, userID string) error {
	const op = "storage/mongo/DeleteVote"

	res, err := m.votes.DeleteOne(ctx, bson.D{{Key: "_id", Value: models.VoteKey(postID, userID)}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// CountVotes — число голосов за пост.
func (m *Mongo) CountVotes(ctx context.Context, postID string) (int64, error) {
	const op = "storage/mongo/CountVotes"

	n, err := m.votes.CountDocuments(ctx, bson.D{{Key: "postId", Value: postID}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}
