package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertNotification пишет одно уведомление; повтор _id — storage.ErrConflict.
func (m *Mongo) InsertNotification(ctx context.Context, n models.Notification) error {
	const op = "storage/mongo/InsertNotification"

	if _, err := m.notifications.InsertOne(ctx, n); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InsertNotifications пишет пачку через InsertMany.
// С включёнными транзакциями пачка атомарна; без них InsertMany упорядочен и
// останавливается на первой ошибке, а записанный префикс возвращается
// как *storage.PartialBatchError.
func (m *Mongo) InsertNotifications(ctx context.Context, batch []models.Notification) error {
	const op = "storage/mongo/InsertNotifications"

	if len(batch) == 0 {
		return nil
	}

	if len(batch) > config.MaxBatchCeiling {
		return fmt.Errorf("%s: %d items: %w", op, len(batch), storage.ErrBatchTooLarge)
	}

	docs := make([]interface{}, len(batch))
	for i := range batch {
		docs[i] = batch[i]
	}

	_, err := m.inTx(ctx, func(ctx context.Context) (bool, error) {
		_, err := m.notifications.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
		return err == nil, err
	})
	if err == nil {
		return nil
	}

	if mongodriver.IsDuplicateKeyError(err) {
		err = fmt.Errorf("%w: %w", storage.ErrConflict, err)
	}

	// В транзакции пачка откатывается целиком; без неё остаётся записанный префикс.
	if !m.cfg.DB.Transactions {
		if inserted, ok := insertedPrefix(err); ok && inserted > 0 {
			return fmt.Errorf("%s: %w", op, &storage.PartialBatchError{Inserted: inserted, Err: err})
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// insertedPrefix — сколько документов упорядоченный InsertMany успел записать
// до первой ошибки записи. false — ошибка не относится к отдельным документам.
func insertedPrefix(err error) (int, bool) {
	var bwe mongodriver.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return 0, false
	}

	first := bwe.WriteErrors[0].Index
	for _, we := range bwe.WriteErrors[1:] {
		if we.Index < first {
			first = we.Index
		}
	}

	return first, true
}

// ListNotifications — уведомления получателя, новые первыми.
func (m *Mongo) ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	const op = "storage/mongo/ListNotifications"

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := m.notifications.Find(ctx, bson.D{{Key: "recipientId", Value: recipientID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Notification, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return out, nil
}

// MarkAllRead помечает непрочитанные уведомления получателя.
func (m *Mongo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	const op = "storage/mongo/MarkAllRead"

	res, err := m.notifications.UpdateMany(ctx,
		bson.D{{Key: "recipientId", Value: recipientID}, {Key: "isRead", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "isRead", Value: true}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.ModifiedCount, nil
}

// DeleteNotification удаляет уведомление, только если оно принадлежит получателю.
func (m *Mongo) DeleteNotification(ctx context.Context, recipientID, id string) error {
	const op = "storage/mongo/DeleteNotification"

	res, err := m.notifications.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "recipientId", Value: recipientID}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
