package model

import (
	"strings"
	"time"
)

// PostState 帖子生命周期，DELETED 为终态
type PostState string

const (
	PostStateActive  PostState = "ACTIVE"
	PostStateDeleted PostState = "DELETED"
)

type PostType string

const (
	PostTypeInProgress PostType = "IN_PROGRESS"
	PostTypeCompleted  PostType = "COMPLETED"
)

// ParsePostType 不区分大小写
func ParsePostType(s string) (PostType, bool) {
	switch t := PostType(strings.ToUpper(strings.TrimSpace(s))); t {
	case PostTypeInProgress, PostTypeCompleted:
		return t, true
	default:
		return "", false
	}
}

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_posts_user_id" json:"user_id"`
	Title     string    `gorm:"type:varchar(40);not null" json:"title"`
	Content   string    `gorm:"type:varchar(3000);not null" json:"content"`
	Nickname  string    `gorm:"type:varchar(12);not null;index:idx_posts_nickname" json:"nickname"` // 创建时的作者昵称快照
	Type      PostType  `gorm:"type:varchar(16);not null" json:"type"`
	State     PostState `gorm:"type:varchar(16);not null;default:'ACTIVE';index:idx_posts_state" json:"state"`
	CreatedAt time.Time `gorm:"index:idx_posts_created_at" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	User   User        `gorm:"foreignKey:UserID;references:ID"`
	Images []PostImage `gorm:"foreignKey:PostID;references:ID"`
	Status *PostStatus `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) IsActive() bool {
	return p != nil && p.State == PostStateActive
}
