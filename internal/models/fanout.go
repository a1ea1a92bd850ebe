package models

import "time"

// FanoutItem — элемент очереди рассылки: одно уведомление одному получателю.
// ID совпадает с ID уведомления, поэтому повторная доставка не плодит дубликатов.
type FanoutItem struct {
	ID           string       `json:"id"`
	Notification Notification `json:"notification"`
	Attempts     int          `json:"attempts"`
	LastError    string       `json:"last_error,omitempty"`
	EnqueuedAt   time.Time    `json:"enqueued_at"`
}

// DeadLetter — элемент рассылки, исчерпавший попытки доставки.
type DeadLetter struct {
	ItemID       string       `json:"item_id"`
	RecipientID  string       `json:"recipient_id"`
	Notification Notification `json:"notification"`
	Attempts     int          `json:"attempts"`
	LastError    string       `json:"last_error"`
	FailedAt     time.Time    `json:"failed_at"`
}

// ChangeKind — вид сущности, об изменении которой сообщают подписчикам.
type ChangeKind string

const (
	ChangeNotifications ChangeKind = "notifications"
	ChangeAchievements  ChangeKind = "achievements"
)
