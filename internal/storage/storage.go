// storage определяет контракты доступа к документному хранилищу для engagement-service.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — версия документа изменилась или запись с таким ключом уже есть.
	ErrConflict = errors.New("conflict")
	// ErrBatchTooLarge — пачка превышает потолок операций атомарной записи.
	ErrBatchTooLarge = errors.New("batch too large")
)

// PartialBatchError — пачка записана не целиком: первые Inserted элементов
// сохранены, остальные нет. Возникает только без транзакций, когда хранилище
// пишет пачку упорядоченно и останавливается на первой ошибке.
type PartialBatchError struct {
	Inserted int
	Err      error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("partial batch: %d inserted: %v", e.Inserted, e.Err)
}

func (e *PartialBatchError) Unwrap() error { return e.Err }

// AchievementStorage — счётчики прогресса.
type AchievementStorage interface {
	// Achievement возвращает счётчик (userID, metric) или ErrNotFound.
	Achievement(ctx context.Context, userID string, metric models.Metric) (*models.Achievement, error)
	// Achievements возвращает все сохранённые счётчики пользователя.
	Achievements(ctx context.Context, userID string) ([]models.Achievement, error)
	// SwapAchievement записывает полное состояние счётчика, только если текущая версия
	// в хранилище равна expected (0 — документа ещё нет). Иначе ErrConflict.
	SwapAchievement(ctx context.Context, expected int64, a models.Achievement) error
}

// NotificationStorage — уведомления получателей.
type NotificationStorage interface {
	// InsertNotification пишет одно уведомление. Повтор ID — ErrConflict.
	InsertNotification(ctx context.Context, n models.Notification) error
	// InsertNotifications пишет пачку одной атомарной единицей.
	// Пачка больше config.MaxBatchCeiling — ErrBatchTooLarge.
	// Хранилище без транзакций может сохранить префикс пачки; тогда ошибка
	// содержит *PartialBatchError с числом сохранённых элементов.
	InsertNotifications(ctx context.Context, batch []models.Notification) error
	// ListNotifications — уведомления получателя, новые первыми.
	ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
	// MarkAllRead помечает прочитанными все уведомления получателя и возвращает их число.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	// DeleteNotification удаляет уведомление получателя или возвращает ErrNotFound.
	DeleteNotification(ctx context.Context, recipientID, id string) error
}

// DirectoryStorage — чтение сущностей форума, нужных для расчёта аудитории.
type DirectoryStorage interface {
	PostByID(ctx context.Context, id string) (*models.Post, error)
	CommunityByID(ctx context.Context, id string) (*models.Community, error)
	// CommunityMembers — обратный запрос членства: пользователи, у которых
	// communitiesJoined содержит communityID.
	CommunityMembers(ctx context.Context, communityID string) ([]string, error)
}

// MembershipStorage — вступление/выход и производный счётчик участников.
type MembershipStorage interface {
	// CreateCommunity создаёт сообщество; повтор ID — ErrConflict.
	CreateCommunity(ctx context.Context, c models.Community) error
	// Join добавляет communityID в множество пользователя и, если множество
	// действительно изменилось, увеличивает miembrosCount на 1.
	// Возвращает признак изменения. Нет сообщества — ErrNotFound.
	Join(ctx context.Context, userID, communityID string) (bool, error)
	// Leave — зеркально Join: удаление из множества и -1 к счётчику при изменении.
	Leave(ctx context.Context, userID, communityID string) (bool, error)
	// CountMembers считает участников по авторитетным множествам пользователей.
	CountMembers(ctx context.Context, communityID string) (int64, error)
	// SetMembersCount перезаписывает производный счётчик.
	SetMembersCount(ctx context.Context, communityID string, n int64) error
	// CommunityIDs — идентификаторы всех сообществ (для сверки).
	CommunityIDs(ctx context.Context) ([]string, error)
}

// LedgerStorage — реестр переключателей: множества сохранённого/лайков и голоса.
type LedgerStorage interface {
	// MemberSet возвращает множество владельца или ErrNotFound.
	MemberSet(ctx context.Context, kind models.SetKind, owner string) (*models.MemberSet, error)
	// SwapMemberSet записывает множество, если версия равна expected (0 — создать). Иначе ErrConflict.
	SwapMemberSet(ctx context.Context, expected int64, set models.MemberSet) error
	// PutVote создаёт голос; если он уже есть — ErrConflict.
	PutVote(ctx context.Context, v models.Vote) error
	// DeleteVote удаляет голос; если его нет — ErrNotFound.
	DeleteVote(ctx context.Context, postID, userID string) error
	// CountVotes — число голосов за пост.
	CountVotes(ctx context.Context, postID string) (int64, error)
}

// Storage задаёт контракт документного хранилища для движка.
type Storage interface {
	AchievementStorage
	NotificationStorage
	DirectoryStorage
	MembershipStorage
	LedgerStorage
	Close(ctx context.Context) error
}

// DeadLetterStorage — хранилище элементов рассылки, исчерпавших попытки.
type DeadLetterStorage interface {
	// SaveDeadLetters сохраняет элементы; уже сохранённые ItemID пропускаются.
	SaveDeadLetters(ctx context.Context, items []models.DeadLetter) error
	// ListDeadLetters — самые старые элементы первыми.
	ListDeadLetters(ctx context.Context, limit int) ([]models.DeadLetter, error)
	// DeleteDeadLetters удаляет элементы по ItemID.
	DeleteDeadLetters(ctx context.Context, ids []string) error
	Close()
}
