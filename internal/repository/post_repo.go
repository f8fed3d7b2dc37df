package repository

import (
	"Community/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostSummary 列表投影，由 posts / post_statuses / users / images 联表得到
type PostSummary struct {
	ID              uint64
	Title           string
	Nickname        string
	CreatedAt       time.Time
	PostType        string
	LikeCount       int64
	CommentCount    int64
	ViewCount       int64
	ProfileImageURL string
	PostImageURL    string
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	LockPost(ctx context.Context, id uint64) (*model.Post, error)
	UpdatePostFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	MarkPostDeleted(ctx context.Context, id uint64) (int64, error)
	ListLatest(ctx context.Context, cursor *uint64, limit int) ([]*PostSummary, error)
	ListLatestWithImage(ctx context.Context, limit int) ([]*PostSummary, error)
	ListPopular(ctx context.Context, since time.Time, offset, limit int) ([]*PostSummary, error)
	ListByNickname(ctx context.Context, nickname string, cursor *uint64, limit int) ([]*PostSummary, error)
	ListTop(ctx context.Context, limit int) ([]*PostSummary, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

const summaryColumns = "p.id, p.title, p.nickname, p.created_at, p.type AS post_type, " +
	"COALESCE(ps.like_count, 0) AS like_count, " +
	"COALESCE(ps.comment_count, 0) AS comment_count, " +
	"COALESCE(ps.view_count, 0) AS view_count, " +
	"COALESCE(ui.url, '') AS profile_image_url"

const firstImageColumn = "COALESCE((SELECT i.url FROM post_images pi JOIN images i ON i.id = pi.image_id " +
	"WHERE pi.post_id = p.id ORDER BY pi.id LIMIT 1), '') AS post_image_url"

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return conn(ctx, s.db).Create(post).Error
}

// GetPost 包含已删除的帖子，由调用方检查状态
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := conn(ctx, s.db).
		Preload("User").
		Preload("User.Image").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_images.id ASC")
		}).
		Preload("Images.Image").
		Preload("Status").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// LockPost 在事务中对帖子行加写锁，只取校验所需的列
func (s *PostRepoImpl) LockPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := conn(ctx, s.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "user_id", "state").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) UpdatePostFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return conn(ctx, s.db).
		Model(&model.Post{}).
		Where("id = ? AND state = ?", id, model.PostStateActive).
		Updates(fields).Error
}

// MarkPostDeleted 只对 ACTIVE 帖子生效，返回受影响行数
func (s *PostRepoImpl) MarkPostDeleted(ctx context.Context, id uint64) (int64, error) {
	result := conn(ctx, s.db).
		Model(&model.Post{}).
		Where("id = ? AND state = ?", id, model.PostStateActive).
		Update("state", model.PostStateDeleted)
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) ListLatest(ctx context.Context, cursor *uint64, limit int) ([]*PostSummary, error) {
	query := s.summaryQuery(ctx, summaryColumns)
	if cursor != nil {
		query = query.Where("p.id < ?", *cursor)
	}
	return scanSummaries(query.Order("p.id DESC").Limit(limit))
}

func (s *PostRepoImpl) ListLatestWithImage(ctx context.Context, limit int) ([]*PostSummary, error) {
	query := s.summaryQuery(ctx, summaryColumns+", "+firstImageColumn)
	return scanSummaries(query.Order("p.id DESC").Limit(limit))
}

func (s *PostRepoImpl) ListPopular(ctx context.Context, since time.Time, offset, limit int) ([]*PostSummary, error) {
	query := s.summaryQuery(ctx, summaryColumns).
		Where("p.created_at >= ?", since).
		Order("COALESCE(ps.like_count, 0) DESC").
		Order("p.id DESC").
		Offset(offset).
		Limit(limit)
	return scanSummaries(query)
}

func (s *PostRepoImpl) ListByNickname(ctx context.Context, nickname string, cursor *uint64, limit int) ([]*PostSummary, error) {
	query := s.summaryQuery(ctx, summaryColumns).Where("p.nickname = ?", nickname)
	if cursor != nil {
		query = query.Where("p.id < ?", *cursor)
	}
	return scanSummaries(query.Order("p.id DESC").Limit(limit))
}

func (s *PostRepoImpl) ListTop(ctx context.Context, limit int) ([]*PostSummary, error) {
	query := s.summaryQuery(ctx, summaryColumns).
		Order("COALESCE(ps.like_count, 0) DESC").
		Order("p.id DESC").
		Limit(limit)
	return scanSummaries(query)
}

func (s *PostRepoImpl) summaryQuery(ctx context.Context, columns string) *gorm.DB {
	return conn(ctx, s.db).
		Table("posts AS p").
		Select(columns).
		Joins("LEFT JOIN post_statuses ps ON ps.post_id = p.id").
		Joins("LEFT JOIN users u ON u.id = p.user_id").
		Joins("LEFT JOIN images ui ON ui.id = u.image_id").
		Where("p.state = ?", model.PostStateActive)
}

func scanSummaries(query *gorm.DB) ([]*PostSummary, error) {
	summaries := make([]*PostSummary, 0)
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
