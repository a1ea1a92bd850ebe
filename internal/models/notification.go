package models

import "time"

// NotificationType — тег типа уведомления.
type NotificationType string

const (
	NotificationNewPost        NotificationType = "new_post"
	NotificationNewComment     NotificationType = "new_comment"
	NotificationLevelUpPost    NotificationType = "level_up_post"
	NotificationLevelUpComment NotificationType = "level_up_comment"
)

// Valid сообщает, известен ли тип.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationNewPost, NotificationNewComment, NotificationLevelUpPost, NotificationLevelUpComment:
		return true
	default:
		return false
	}
}

// IsLevelUp — уведомление о повышении уровня.
func (t NotificationType) IsLevelUp() bool {
	return t == NotificationLevelUpPost || t == NotificationLevelUpComment
}

// Notification — запись notifications/{recipient}/{id}.
// Поля полезной нагрузки заполняются в зависимости от типа.
type Notification struct {
	ID            string           `bson:"_id" json:"id"`
	RecipientID   string           `bson:"recipientId" json:"recipient_id"`
	Type          NotificationType `bson:"type" json:"type"`
	Message       string           `bson:"message" json:"message"`
	CreatedAt     time.Time        `bson:"createdAt" json:"created_at"`
	IsRead        bool             `bson:"isRead" json:"is_read"`
	PostID        string           `bson:"postId,omitempty" json:"post_id,omitempty"`
	PostTitle     string           `bson:"postTitle,omitempty" json:"post_title,omitempty"`
	CommunityID   string           `bson:"communityId,omitempty" json:"community_id,omitempty"`
	CommunityName string           `bson:"communityName,omitempty" json:"community_name,omitempty"`
	FromUserID    string           `bson:"fromUserId,omitempty" json:"from_user_id,omitempty"`
	FromUserName  string           `bson:"fromUserName,omitempty" json:"from_user_name,omitempty"`
	Level         int64            `bson:"level,omitempty" json:"level,omitempty"`
}

// Event — доменное событие, для которого вычисляется аудитория и строятся уведомления.
// UserID — инициатор: автор поста/комментария или пользователь, поднявший уровень.
type Event struct {
	Type          NotificationType
	UserID        string
	UserName      string
	PostID        string
	PostTitle     string
	CommunityID   string
	CommunityName string
	Level         int64
}
