package repository

import (
	"Community/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ImageRepo interface {
	CreateImages(ctx context.Context, images []*model.Image) error
	CreatePostImages(ctx context.Context, postImages []*model.PostImage) error
	GetPostImageIDs(ctx context.Context, postID uint64) ([]uint64, error)
	DeletePostImages(ctx context.Context, postID uint64, imageIDs []uint64) (int64, error)
	CountImages(ctx context.Context) (int64, error)
	GetOrphanImages(ctx context.Context, before time.Time, limit int) ([]*model.Image, error)
	DeleteImages(ctx context.Context, ids []uint64) error
}

type ImageRepoImpl struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) ImageRepo {
	return &ImageRepoImpl{db: db}
}

func (s *ImageRepoImpl) CreateImages(ctx context.Context, images []*model.Image) error {
	if len(images) == 0 {
		return nil
	}
	return conn(ctx, s.db).Create(images).Error
}

func (s *ImageRepoImpl) CreatePostImages(ctx context.Context, postImages []*model.PostImage) error {
	if len(postImages) == 0 {
		return nil
	}
	return conn(ctx, s.db).Create(postImages).Error
}

// GetPostImageIDs 按挂载顺序返回
func (s *ImageRepoImpl) GetPostImageIDs(ctx context.Context, postID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := conn(ctx, s.db).
		Model(&model.PostImage{}).
		Where("post_id = ?", postID).
		Order("id ASC").
		Pluck("image_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ImageRepoImpl) DeletePostImages(ctx context.Context, postID uint64, imageIDs []uint64) (int64, error) {
	if len(imageIDs) == 0 {
		return 0, nil
	}
	result := conn(ctx, s.db).
		Where("post_id = ? AND image_id IN ?", postID, imageIDs).
		Delete(&model.PostImage{})
	return result.RowsAffected, result.Error
}

func (s *ImageRepoImpl) CountImages(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, s.db).Model(&model.Image{}).Count(&count).Error
	return count, err
}

// GetOrphanImages 已从帖子移除的帖子图片，独立上传和头像不在此列
func (s *ImageRepoImpl) GetOrphanImages(ctx context.Context, before time.Time, limit int) ([]*model.Image, error) {
	images := make([]*model.Image, 0)
	err := conn(ctx, s.db).
		Where("source = ?", model.ImageSourcePost).
		Where("created_at < ?", before).
		Where("NOT EXISTS (SELECT 1 FROM post_images pi WHERE pi.image_id = images.id)").
		Where("NOT EXISTS (SELECT 1 FROM users u WHERE u.image_id = images.id)").
		Order("id ASC").
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageRepoImpl) DeleteImages(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(ctx, s.db).Where("id IN ?", ids).Delete(&model.Image{}).Error
}
