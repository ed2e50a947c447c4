package models

import (
	"time"
)

// MaxCommentDepth caps the nesting of replies. A reply to a comment already
// at this depth is rejected.
const MaxCommentDepth = 5

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Content   string    `json:"content" binding:"required"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:uuid"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID"`
	BlogID    string    `json:"blogId" gorm:"column:blog_id;type:uuid"`
	ParentID  *string   `json:"parentId" gorm:"column:parent_id;type:uuid"`
	Depth     int       `json:"depth" gorm:"default:0"`
	Replies   []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
