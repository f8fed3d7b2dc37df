package service

import (
	"Community/internal/api/dto"
	"Community/internal/model"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/upload"
	"Community/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"
)

type ImageService interface {
	Validate(f *upload.File) error
	Store(ctx context.Context, files []*upload.File, post *model.Post) ([]*model.Image, error)
	SaveOne(ctx context.Context, f *upload.File) (*model.Image, error)
	Count(ctx context.Context) (*dto.ImageCountDTO, error)
	CleanupOrphans(ctx context.Context, olderThan time.Duration, batch int) (int, error)
}

type imageServiceImpl struct {
	imageRepo repository.ImageRepo
	tx        repository.Transactor
	uploader  upload.Uploader
	maxSize   int64
}

func NewImageService(imageRepo repository.ImageRepo, tx repository.Transactor, uploader upload.Uploader, maxSize int64) ImageService {
	return &imageServiceImpl{
		imageRepo: imageRepo,
		tx:        tx,
		uploader:  uploader,
		maxSize:   maxSize,
	}
}

// Validate 依次检查：空文件、类型、大小
func (s *imageServiceImpl) Validate(f *upload.File) error {
	if f == nil {
		return ErrEmptyImage
	}
	size := f.Size
	if size == 0 {
		size = int64(len(f.Content))
	}
	if size == 0 {
		return ErrEmptyImage
	}

	contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType == "" || !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return ErrBadContentType
	}
	if _, ok := consts.AllowedImageTypes[contentType]; !ok {
		return ErrBadContentType
	}

	if size > s.maxSize {
		return ErrTooLarge
	}
	return nil
}

// Store 先校验全部文件再上传，post 为 nil 时只保存图片记录
func (s *imageServiceImpl) Store(ctx context.Context, files []*upload.File, post *model.Post) ([]*model.Image, error) {
	if len(files) == 0 {
		return nil, ErrEmptyImage
	}
	for _, f := range files {
		if err := s.Validate(f); err != nil {
			return nil, err
		}
	}
	if post != nil && !post.IsActive() {
		return nil, ErrPostNotFound
	}

	source := model.ImageSourcePost
	if post == nil {
		source = model.ImageSourceStandalone
	}
	images := make([]*model.Image, 0, len(files))
	for _, f := range files {
		url, err := s.uploader.Upload(ctx, upload.TargetPost, f)
		if err != nil {
			log.ErrorContext(ctx, "image upload failed", "filename", f.Filename, "err", err)
			return nil, fmt.Errorf("%w: %v", ErrServerError, err)
		}
		images = append(images, &model.Image{URL: url, Source: source})
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.imageRepo.CreateImages(ctx, images); err != nil {
			return err
		}
		if post == nil {
			return nil
		}
		postImages := make([]*model.PostImage, 0, len(images))
		for _, img := range images {
			postImages = append(postImages, &model.PostImage{PostID: post.ID, ImageID: img.ID})
		}
		return s.imageRepo.CreatePostImages(ctx, postImages)
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}

// SaveOne 头像上传
func (s *imageServiceImpl) SaveOne(ctx context.Context, f *upload.File) (*model.Image, error) {
	if err := s.Validate(f); err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, upload.TargetProfile, f)
	if err != nil {
		log.ErrorContext(ctx, "profile image upload failed", "filename", f.Filename, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrServerError, err)
	}

	image := &model.Image{URL: url, Source: model.ImageSourceProfile}
	if err = s.imageRepo.CreateImages(ctx, []*model.Image{image}); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageServiceImpl) Count(ctx context.Context) (*dto.ImageCountDTO, error) {
	count, err := s.imageRepo.CountImages(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ImageCountDTO{Count: count}, nil
}

// CleanupOrphans 删除超过 olderThan 且已从帖子移除的图片，存储支持删除时一并删除对象
func (s *imageServiceImpl) CleanupOrphans(ctx context.Context, olderThan time.Duration, batch int) (int, error) {
	images, err := s.imageRepo.GetOrphanImages(ctx, time.Now().Add(-olderThan), batch)
	if err != nil {
		return 0, err
	}
	if len(images) == 0 {
		return 0, nil
	}

	deleter, canDelete := s.uploader.(upload.Deleter)
	ids := make([]uint64, 0, len(images))
	for _, img := range images {
		if canDelete {
			if err = deleter.Delete(ctx, img.URL); err != nil {
				log.WarnContext(ctx, "failed to delete orphan image object", "image_id", img.ID, "err", err)
				continue
			}
		}
		ids = append(ids, img.ID)
	}

	if err = s.imageRepo.DeleteImages(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}
