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

// achievementDoc — документ logros: ключ "{uid}/{metric}" плюс поля счётчика.
type achievementDoc struct {
	ID                 string `bson:"_id"`
	models.Achievement `bson:",inline"`
}

// Achievement возвращает счётчик или storage.ErrNotFound.
func (m *Mongo) Achievement(ctx context.Context, userID string, metric models.Metric) (*models.Achievement, error) {
	const op = "storage/mongo/Achievement"

	var doc achievementDoc
	err := m.achievements.FindOne(ctx, bson.D{{Key: "_id", Value: models.AchievementKey(userID, metric)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &doc.Achievement, nil
}

// Achievements возвращает все счётчики пользователя.
func (m *Mongo) Achievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	const op = "storage/mongo/Achievements"

	cur, err := m.achievements.Find(ctx,
		bson.D{{Key: "userId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "type", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var out []models.Achievement
	for cur.Next(ctx) {
		var doc achievementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		out = append(out, doc.Achievement)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// SwapAchievement — compare-and-swap по полю version.
// expected == 0: документ создаётся, дубликат ключа означает, что его уже создал конкурент.
// expected > 0: полная замена документа, если version не изменилась.
func (m *Mongo) SwapAchievement(ctx context.Context, expected int64, a models.Achievement) error {
	const op = "storage/mongo/SwapAchievement"

	doc := achievementDoc{ID: models.AchievementKey(a.UserID, a.Metric), Achievement: a}

	if expected == 0 {
		if _, err := m.achievements.InsertOne(ctx, doc); err != nil {
			if mongodriver.IsDuplicateKeyError(err) {
				return fmt.Errorf("%s: %w", op, storage.ErrConflict)
			}

			return fmt.Errorf("%s: insert: %w", op, err)
		}

		return nil
	}

	res, err := m.achievements.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}, {Key: "version", Value: expected}},
		doc,
	)
	if err != nil {
		return fmt.Errorf("%s: replace: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}

	return nil
}
