package dto

import "time"

// PostFieldsDTO 创建与更新共用，更新时空白字段保持不变
type PostFieldsDTO struct {
	Title   string `form:"title" validate:"max=40"`
	Content string `form:"content" validate:"max=3000"`
	Type    string `form:"type"`
}

// UpdatePostDTO 更新帖子
type UpdatePostDTO struct {
	PostFieldsDTO
	RemoveImageIDs []uint64 `form:"removeImageIds"`
}

// PostIDDTO 新建帖子的 ID
type PostIDDTO struct {
	PostID uint64 `json:"postId"`
}

// PostSummaryDTO 列表项
type PostSummaryDTO struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Nickname        string    `json:"nickname"`
	CreatedAt       time.Time `json:"createdAt"`
	LikeCount       int64     `json:"likeCount"`
	CommentCount    int64     `json:"commentCount"`
	ViewCount       int64     `json:"viewCount"`
	ProfileImageURL string    `json:"profileImage"`
	PostImageURL    string    `json:"imageUrl,omitempty"`
	PostType        string    `json:"postType"`
}

// FeedPageDTO 游标分页结果
type FeedPageDTO struct {
	Items      []*PostSummaryDTO `json:"items"`
	NextCursor *uint64           `json:"nextCursor"`
	HasNext    bool              `json:"hasNext"`
}

// PostImageDTO 帖子图片
type PostImageDTO struct {
	ImageID uint64 `json:"imageId"`
	URL     string `json:"url"`
}

// PostDetailDTO 帖子详情
type PostDetailDTO struct {
	ID              uint64          `json:"id"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	CreatedAt       time.Time       `json:"createdAt"`
	UserID          uint64          `json:"userId"`
	Nickname        string          `json:"nickname"`
	ProfileImageURL string          `json:"profileImage"`
	PostType        string          `json:"postType"`
	Images          []*PostImageDTO `json:"images"`
	ViewCount       int64           `json:"viewCount"`
	LikeCount       int64           `json:"likeCount"`
	CommentCount    int64           `json:"commentCount"`
}

// FeedQueryDTO 列表查询参数
type FeedQueryDTO struct {
	Cursor *uint64 `form:"cursor"`
	Size   int     `form:"size"`
}

// PopularQueryDTO 热门列表查询参数，cursor 为页码
type PopularQueryDTO struct {
	Period string `form:"period"`
	Cursor *int   `form:"cursor"`
	Size   int    `form:"size"`
}

// NicknameQueryDTO 按作者昵称查询
type NicknameQueryDTO struct {
	Nickname string  `form:"nickname"`
	Cursor   *uint64 `form:"cursor"`
	Size     int     `form:"size"`
}
