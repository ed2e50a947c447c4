package models

import (
	"time"
)

// Like is keyed by (user_id, blog_id): the composite unique index is what
// guarantees at most one like per user and blog under concurrent requests.
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;uniqueIndex:idx_likes_user_blog"`
	BlogID    string    `json:"blogId" gorm:"column:blog_id;type:uuid;uniqueIndex:idx_likes_user_blog"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
