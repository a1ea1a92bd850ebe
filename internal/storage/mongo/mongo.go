// mongo — реализация storage.Storage поверх MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	achievementsCollection  = "logros"
	notificationsCollection = "notifications"
	usersCollection         = "users"
	postsCollection         = "posts"
	communitiesCollection   = "comunidades"
	savedPostsCollection    = "savedPosts"
	videosCollection        = "videos"
	votesCollection         = "votos"
	defaultDBName           = "forum"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg           *config.Config
	client        *mongodriver.Client
	db            *mongodriver.Database
	achievements  *mongodriver.Collection
	notifications *mongodriver.Collection
	users         *mongodriver.Collection
	posts         *mongodriver.Collection
	communities   *mongodriver.Collection
	savedPosts    *mongodriver.Collection
	videos        *mongodriver.Collection
	votes         *mongodriver.Collection
}

var _ storage.Storage = (*Mongo)(nil)

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		cfg:           cfg,
		client:        cli,
		db:            db,
		achievements:  db.Collection(achievementsCollection),
		notifications: db.Collection(notificationsCollection),
		users:         db.Collection(usersCollection),
		posts:         db.Collection(postsCollection),
		communities:   db.Collection(communitiesCollection),
		savedPosts:    db.Collection(savedPostsCollection),
		videos:        db.Collection(videosCollection),
		votes:         db.Collection(votesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, необходимые движку.
//   - лента уведомлений: recipientId + createdAt(desc);
//   - непрочитанные: recipientId + isRead;
//   - обратный запрос членства: multikey по communitiesJoined;
//   - счётчики пользователя: userId;
//   - голоса поста: postId.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	indexes := map[*mongodriver.Collection][]mongodriver.IndexModel{
		m.notifications: {
			{
				Keys:    bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("recipient_created_desc"),
			},
			{
				Keys:    bson.D{{Key: "recipientId", Value: 1}, {Key: "isRead", Value: 1}},
				Options: options.Index().SetName("recipient_is_read"),
			},
		},
		m.users: {
			{
				Keys:    bson.D{{Key: "communitiesJoined", Value: 1}},
				Options: options.Index().SetName("communities_joined"),
			},
		},
		m.achievements: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}},
				Options: options.Index().SetName("user_id"),
			},
		},
		m.votes: {
			{
				Keys:    bson.D{{Key: "postId", Value: 1}},
				Options: options.Index().SetName("post_id"),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo ensure indexes %s: %w", coll.Name(), err)
		}
	}

	return nil
}

// inTx выполняет fn в многодокументной транзакции, если они включены в конфиге.
// Без транзакций fn выполняется как последовательность независимых атомарных записей.
func (m *Mongo) inTx(ctx context.Context, fn func(ctx context.Context) (bool, error)) (bool, error) {
	if !m.cfg.DB.Transactions {
		return fn(ctx)
	}

	sess, err := m.client.StartSession()
	if err != nil {
		return false, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongodriver.SessionContext) (interface{}, error) {
		return fn(sc)
	})
	if err != nil {
		return false, err
	}

	changed, _ := res.(bool)
	return changed, nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
