package service

import (
	"fmt"

	"github.com/pribylovaa/forum-engagement/internal/models"
)

// anonymousName подставляется, если у автора нет отображаемого имени.
const anonymousName = "Alguien"

// messageFor — текст уведомления для события.
func messageFor(ev models.Event) string {
	switch ev.Type {
	case models.NotificationNewPost:
		return fmt.Sprintf("Se publicó un nuevo post en la comunidad \"%s\"", ev.CommunityName)
	case models.NotificationNewComment:
		name := ev.UserName
		if name == "" {
			name = anonymousName
		}
		return fmt.Sprintf("%s comentó tu post \"%s\"", name, ev.PostTitle)
	case models.NotificationLevelUpPost:
		return fmt.Sprintf("%s Has subido al nivel %d", models.MetricPosts.Icon(), ev.Level)
	case models.NotificationLevelUpComment:
		return fmt.Sprintf("%s Has subido al nivel %d", models.MetricComments.Icon(), ev.Level)
	default:
		return ""
	}
}

// buildNotification собирает уведомление получателю с полезной нагрузкой по типу события.
func (s *Service) buildNotification(ev models.Event, recipientID string) models.Notification {
	n := models.Notification{
		ID:          s.newID(),
		RecipientID: recipientID,
		Type:        ev.Type,
		Message:     messageFor(ev),
		CreatedAt:   s.now(),
		IsRead:      false,
	}

	switch ev.Type {
	case models.NotificationNewPost:
		n.PostID = ev.PostID
		n.PostTitle = ev.PostTitle
		n.CommunityID = ev.CommunityID
		n.CommunityName = ev.CommunityName
	case models.NotificationNewComment:
		n.PostID = ev.PostID
		n.PostTitle = ev.PostTitle
		n.FromUserID = ev.UserID
		n.FromUserName = ev.UserName
	case models.NotificationLevelUpPost, models.NotificationLevelUpComment:
		n.Level = ev.Level
	}

	return n
}

func (s *Service) buildNotifications(ev models.Event, audience []string) []models.Notification {
	out := make([]models.Notification, 0, len(audience))
	for _, r := range audience {
		out = append(out, s.buildNotification(ev, r))
	}

	return out
}
