// models описывает доменные сущности движка вовлечённости и их форму в хранилище.
package models

import "time"

// User — профиль пользователя в части, которая нужна движку (users/{id}).
type User struct {
	ID                string   `bson:"_id" json:"id"`
	DisplayName       string   `bson:"displayName,omitempty" json:"display_name,omitempty"`
	PhotoURL          string   `bson:"photoURL,omitempty" json:"photo_url,omitempty"`
	CommunitiesJoined []string `bson:"communitiesJoined" json:"communities_joined"`
}

// Post — пост ленты. Отсутствие CommunityID — глобальная лента.
type Post struct {
	ID          string    `bson:"_id" json:"id"`
	AuthorID    string    `bson:"authorUid" json:"author_id"`
	CommunityID string    `bson:"communityId,omitempty" json:"community_id,omitempty"`
	Title       string    `bson:"title" json:"title"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}

// Comment — комментарий к посту; только добавляется.
type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	PostID    string    `bson:"postId" json:"post_id"`
	AuthorID  string    `bson:"authorUid" json:"author_id"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Community — сообщество (comunidades/{id}). MembersCount — производный счётчик.
type Community struct {
	ID           string    `bson:"_id" json:"id"`
	Title        string    `bson:"titulo" json:"title"`
	Description  string    `bson:"descripcion,omitempty" json:"description,omitempty"`
	BannerURL    string    `bson:"bannerUrl,omitempty" json:"banner_url,omitempty"`
	CreatorID    string    `bson:"creatorId" json:"creator_id"`
	MembersCount int64     `bson:"miembrosCount" json:"members_count"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}

// Vote — голос пользователя за пост; значение имеет только существование.
type Vote struct {
	PostID    string    `bson:"postId" json:"post_id"`
	UserID    string    `bson:"userId" json:"user_id"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// VoteKey — ключ документа голоса.
func VoteKey(postID, userID string) string {
	return postID + "/" + userID
}
