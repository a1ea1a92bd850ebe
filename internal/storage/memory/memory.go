// memory — реализация storage.Storage в памяти процесса.
// Используется для локального запуска (DATABASE_URL=memory://) и в тестах сервиса.
// Все операции выполняются под одним мьютексом, поэтому CAS и пачки атомарны.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pribylovaa/forum-engagement/internal/config"
	"github.com/pribylovaa/forum-engagement/internal/models"
	"github.com/pribylovaa/forum-engagement/internal/storage"
)

// Storage — хранилище в памяти.
type Storage struct {
	mu            sync.Mutex
	achievements  map[string]models.Achievement
	notifications map[string]map[string]models.Notification
	users         map[string]*models.User
	posts         map[string]models.Post
	communities   map[string]models.Community
	sets          map[models.SetKind]map[string]models.MemberSet
	votes         map[string]models.Vote
}

var _ storage.Storage = (*Storage)(nil)

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		achievements:  make(map[string]models.Achievement),
		notifications: make(map[string]map[string]models.Notification),
		users:         make(map[string]*models.User),
		posts:         make(map[string]models.Post),
		communities:   make(map[string]models.Community),
		sets:          make(map[models.SetKind]map[string]models.MemberSet),
		votes:         make(map[string]models.Vote),
	}
}

// Close — no-op.
func (s *Storage) Close(context.Context) error { return nil }

// PutUser сохраняет профиль пользователя целиком.
func (s *Storage) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.CommunitiesJoined = append([]string(nil), u.CommunitiesJoined...)
	s.users[u.ID] = &u
}

// User возвращает копию профиля или ErrNotFound.
func (s *Storage) User(id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	out := *u
	out.CommunitiesJoined = append([]string(nil), u.CommunitiesJoined...)
	return &out, nil
}

// PutPost сохраняет пост.
func (s *Storage) PutPost(p models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[p.ID] = p
}

// Achievement возвращает счётчик (userID, metric).
func (s *Storage) Achievement(_ context.Context, userID string, metric models.Metric) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.achievements[models.AchievementKey(userID, metric)]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &a, nil
}

// Achievements возвращает счётчики пользователя в порядке models.Metrics.
func (s *Storage) Achievements(_ context.Context, userID string) ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Achievement
	for _, m := range models.Metrics {
		if a, ok := s.achievements[models.AchievementKey(userID, m)]; ok {
			out = append(out, a)
		}
	}

	return out, nil
}

// SwapAchievement — CAS по Version.
func (s *Storage) SwapAchievement(_ context.Context, expected int64, a models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.AchievementKey(a.UserID, a.Metric)
	cur, ok := s.achievements[key]

	switch {
	case !ok && expected != 0:
		return storage.ErrConflict
	case ok && cur.Version != expected:
		return storage.ErrConflict
	}

	s.achievements[key] = a
	return nil
}

// InsertNotification пишет одно уведомление.
func (s *Storage) InsertNotification(_ context.Context, n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasNotification(n) {
		return storage.ErrConflict
	}

	s.putNotification(n)
	return nil
}

// InsertNotifications пишет пачку целиком или не пишет ничего.
func (s *Storage) InsertNotifications(_ context.Context, batch []models.Notification) error {
	if len(batch) > config.MaxBatchCeiling {
		return fmt.Errorf("memory: %d items: %w", len(batch), storage.ErrBatchTooLarge)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range batch {
		if s.hasNotification(n) {
			return storage.ErrConflict
		}
	}

	for _, n := range batch {
		s.putNotification(n)
	}

	return nil
}

func (s *Storage) hasNotification(n models.Notification) bool {
	_, ok := s.notifications[n.RecipientID][n.ID]
	return ok
}

func (s *Storage) putNotification(n models.Notification) {
	box, ok := s.notifications[n.RecipientID]
	if !ok {
		box = make(map[string]models.Notification)
		s.notifications[n.RecipientID] = box
	}

	box[n.ID] = n
}

// ListNotifications — новые первыми, при равном времени по ID.
func (s *Storage) ListNotifications(_ context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, 0, len(s.notifications[recipientID]))
	for _, n := range s.notifications[recipientID] {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}

	return out, nil
}

// MarkAllRead помечает непрочитанные уведомления получателя.
func (s *Storage) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, item := range s.notifications[recipientID] {
		if item.IsRead {
			continue
		}
		item.IsRead = true
		s.notifications[recipientID][id] = item
		n++
	}

	return n, nil
}

// DeleteNotification удаляет уведомление получателя.
func (s *Storage) DeleteNotification(_ context.Context, recipientID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifications[recipientID][id]; !ok {
		return storage.ErrNotFound
	}

	delete(s.notifications[recipientID], id)
	return nil
}

// PostByID возвращает пост.
func (s *Storage) PostByID(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &p, nil
}

// CommunityByID возвращает сообщество.
func (s *Storage) CommunityByID(_ context.Context, id string) (*models.Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &c, nil
}

// CommunityMembers перебирает пользователей и отбирает тех, чьё множество содержит communityID.
func (s *Storage) CommunityMembers(_ context.Context, communityID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.membersLocked(communityID), nil
}

func (s *Storage) membersLocked(communityID string) []string {
	var out []string
	for id, u := range s.users {
		if contains(u.CommunitiesJoined, communityID) {
			out = append(out, id)
		}
	}

	sort.Strings(out)
	return out
}

// CreateCommunity создаёт сообщество.
func (s *Storage) CreateCommunity(_ context.Context, c models.Community) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.communities[c.ID]; ok {
		return storage.ErrConflict
	}

	s.communities[c.ID] = c
	return nil
}

// Join — объединение множеств и +1 к счётчику одной критической секцией.
func (s *Storage) Join(_ context.Context, userID, communityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[communityID]
	if !ok {
		return false, storage.ErrNotFound
	}

	u, ok := s.users[userID]
	if !ok {
		u = &models.User{ID: userID}
		s.users[userID] = u
	}

	if contains(u.CommunitiesJoined, communityID) {
		return false, nil
	}

	u.CommunitiesJoined = append(u.CommunitiesJoined, communityID)
	c.MembersCount++
	s.communities[communityID] = c

	return true, nil
}

// Leave — разность множеств и -1 к счётчику одной критической секцией.
func (s *Storage) Leave(_ context.Context, userID, communityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[communityID]
	if !ok {
		return false, storage.ErrNotFound
	}

	u, ok := s.users[userID]
	if !ok || !contains(u.CommunitiesJoined, communityID) {
		return false, nil
	}

	u.CommunitiesJoined = remove(u.CommunitiesJoined, communityID)
	c.MembersCount--
	s.communities[communityID] = c

	return true, nil
}

// CountMembers считает участников по множествам пользователей.
func (s *Storage) CountMembers(_ context.Context, communityID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.communities[communityID]; !ok {
		return 0, storage.ErrNotFound
	}

	return int64(len(s.membersLocked(communityID))), nil
}

// SetMembersCount перезаписывает счётчик участников.
func (s *Storage) SetMembersCount(_ context.Context, communityID string, n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.communities[communityID]
	if !ok {
		return storage.ErrNotFound
	}

	c.MembersCount = n
	s.communities[communityID] = c
	return nil
}

// CommunityIDs возвращает отсортированные идентификаторы сообществ.
func (s *Storage) CommunityIDs(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.communities))
	for id := range s.communities {
		out = append(out, id)
	}

	sort.Strings(out)
	return out, nil
}

// MemberSet возвращает копию множества.
func (s *Storage) MemberSet(_ context.Context, kind models.SetKind, owner string) (*models.MemberSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[kind][owner]
	if !ok {
		return nil, storage.ErrNotFound
	}

	set.Members = append([]string(nil), set.Members...)
	return &set, nil
}

// SwapMemberSet — CAS по Version.
func (s *Storage) SwapMemberSet(_ context.Context, expected int64, set models.MemberSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byOwner, ok := s.sets[set.Kind]
	if !ok {
		byOwner = make(map[string]models.MemberSet)
		s.sets[set.Kind] = byOwner
	}

	cur, ok := byOwner[set.Owner]
	switch {
	case !ok && expected != 0:
		return storage.ErrConflict
	case ok && cur.Version != expected:
		return storage.ErrConflict
	}

	set.Members = append([]string(nil), set.Members...)
	byOwner[set.Owner] = set
	return nil
}

// PutVote создаёт голос.
func (s *Storage) PutVote(_ context.Context, v models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VoteKey(v.PostID, v.UserID)
	if _, ok := s.votes[key]; ok {
		return storage.ErrConflict
	}

	s.votes[key] = v
	return nil
}

// DeleteVote удаляет голос.
func (s *Storage) DeleteVote(_ context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VoteKey(postID, userID)
	if _, ok := s.votes[key]; !ok {
		return storage.ErrNotFound
	}

	delete(s.votes, key)
	return nil
}

// CountVotes — число голосов за пост.
func (s *Storage) CountVotes(_ context.Context, postID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, v := range s.votes {
		if v.PostID == postID {
			n++
		}
	}

	return n, nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}

	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}

	return out
}
