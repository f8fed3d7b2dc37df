package model

// PostStatus 帖子计数，与 Post 一对一，只通过原地加减更新
type PostStatus struct {
	PostID       uint64 `gorm:"primaryKey;autoIncrement:false"`
	ViewCount    int64  `gorm:"not null;default:0"`
	LikeCount    int64  `gorm:"not null;default:0;index:idx_post_statuses_like_count"`
	CommentCount int64  `gorm:"not null;default:0"`
}

func (PostStatus) TableName() string {
	return "post_statuses"
}
