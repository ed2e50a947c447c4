package models

import (
	"time"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

type Blog struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title         string     `json:"title" binding:"required"`
	Slug          string     `json:"slug" gorm:"uniqueIndex"`
	Content       string     `json:"content" binding:"required"`
	Status        BlogStatus `json:"status" gorm:"type:varchar(16);default:draft"`
	ViewsCount    int        `json:"viewsCount" gorm:"column:views_count;default:0"`
	LikesCount    int        `json:"likesCount" gorm:"column:likes_count;default:0"`
	CommentsCount int        `json:"commentsCount" gorm:"column:comments_count;default:0"`
	AuthorID      string     `json:"authorId" gorm:"column:author_id;type:uuid"`
	Author        User       `json:"author" gorm:"foreignKey:AuthorID"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Blog) TableName() string {
	return "blogs"
}
