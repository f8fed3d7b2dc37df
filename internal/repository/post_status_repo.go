package repository

import (
	"Community/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Counter 可原地加减的计数列
type Counter string

const (
	CounterView    Counter = "view"
	CounterLike    Counter = "like"
	CounterComment Counter = "comment"
)

var counterColumns = map[Counter]string{
	CounterView:    "view_count",
	CounterLike:    "like_count",
	CounterComment: "comment_count",
}

var ErrUnknownCounter = errors.New("unknown post status counter")

type PostStatusRepo interface {
	CreateStatus(ctx context.Context, postID uint64) error
	GetStatus(ctx context.Context, postID uint64) (*model.PostStatus, error)
	IncrementViewCount(ctx context.Context, postID uint64) error
	AddCount(ctx context.Context, postID uint64, counter Counter, delta int64) (int64, error)
}

type PostStatusRepoImpl struct {
	db *gorm.DB
}

func NewPostStatusRepo(db *gorm.DB) PostStatusRepo {
	return &PostStatusRepoImpl{db: db}
}

func (s *PostStatusRepoImpl) CreateStatus(ctx context.Context, postID uint64) error {
	return conn(ctx, s.db).Create(&model.PostStatus{PostID: postID}).Error
}

func (s *PostStatusRepoImpl) GetStatus(ctx context.Context, postID uint64) (*model.PostStatus, error) {
	status := &model.PostStatus{}
	err := conn(ctx, s.db).Where("post_id = ?", postID).First(status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return status, nil
}

func (s *PostStatusRepoImpl) IncrementViewCount(ctx context.Context, postID uint64) error {
	return conn(ctx, s.db).
		Model(&model.PostStatus{}).
		Where("post_id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// AddCount 原地加减，结果不低于 0
func (s *PostStatusRepoImpl) AddCount(ctx context.Context, postID uint64, counter Counter, delta int64) (int64, error) {
	column, ok := counterColumns[counter]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCounter, counter)
	}
	expr := fmt.Sprintf("CASE WHEN %[1]s + ? < 0 THEN 0 ELSE %[1]s + ? END", column)
	result := conn(ctx, s.db).
		Model(&model.PostStatus{}).
		Where("post_id = ?", postID).
		UpdateColumn(column, gorm.Expr(expr, delta, delta))
	return result.RowsAffected, result.Error
}
