package service

import (
	"Community/internal/api/dto"
	"Community/internal/model"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/redis"
	"Community/internal/pkg/upload"
	"Community/internal/pkg/util"
	"Community/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, fields *dto.PostFieldsDTO, images []*upload.File) (uint64, error)
	UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.UpdatePostDTO, images []*upload.File) error
	DeletePost(ctx context.Context, userID uint64, postID uint64) error
	AdminDeletePost(ctx context.Context, postID uint64) error
	GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error)
}

type postServiceImpl struct {
	postRepo          repository.PostRepo
	postStatusRepo    repository.PostStatusRepo
	imageRepo         repository.ImageRepo
	userRepo          repository.UserRepo
	imageService      ImageService
	tx                repository.Transactor
	maxImages         int
	defaultProfileURL string
}

func NewPostService(
	postRepo repository.PostRepo,
	postStatusRepo repository.PostStatusRepo,
	imageRepo repository.ImageRepo,
	userRepo repository.UserRepo,
	imageService ImageService,
	tx repository.Transactor,
	maxImages int,
	defaultProfileURL string,
) PostService {
	return &postServiceImpl{
		postRepo:          postRepo,
		postStatusRepo:    postStatusRepo,
		imageRepo:         imageRepo,
		userRepo:          userRepo,
		imageService:      imageService,
		tx:                tx,
		maxImages:         maxImages,
		defaultProfileURL: defaultProfileURL,
	}
}

// CreatePost 帖子、图片、计数行在同一事务中写入
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, fields *dto.PostFieldsDTO, images []*upload.File) (uint64, error) {
	if len(images) > s.maxImages {
		return 0, ErrTooManyImages
	}
	if util.IsBlank(&fields.Title) || util.IsBlank(&fields.Content) {
		return 0, ErrParamInvalid
	}
	postType, ok := model.ParsePostType(fields.Type)
	if !ok {
		return 0, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	post := &model.Post{
		UserID:   user.ID,
		Title:    strings.TrimSpace(fields.Title),
		Content:  fields.Content,
		Nickname: user.Nickname,
		Type:     postType,
		State:    model.PostStateActive,
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.postRepo.CreatePost(ctx, post); err != nil {
			return err
		}
		if len(images) > 0 {
			if _, err := s.imageService.Store(ctx, images, post); err != nil {
				return err
			}
		}
		return s.postStatusRepo.CreateStatus(ctx, post.ID)
	})
	if err != nil {
		return 0, err
	}

	log.InfoContext(ctx, "post created", "post_id", post.ID, "user_id", userID, "images", len(images))
	return post.ID, nil
}

// UpdatePost 只更新非空字段，先移除图片再追加新图片
// 图片数量在事务内锁定帖子后重新计算，并发更新不会超过上限
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, postID uint64, req *dto.UpdatePostDTO, images []*upload.File) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		post, err := s.postRepo.LockPost(ctx, postID)
		if err != nil {
			return err
		}
		if !post.IsActive() {
			return ErrPostNotFound
		}
		if post.UserID != userID {
			return ErrForbidden
		}

		currentIDs, err := s.imageRepo.GetPostImageIDs(ctx, post.ID)
		if err != nil {
			return err
		}
		removeIDs := selectRemovals(currentIDs, req.RemoveImageIDs)
		if len(currentIDs)-len(removeIDs)+len(images) > s.maxImages {
			return ErrTooManyImages
		}
		fields, err := updatedFields(req)
		if err != nil {
			return err
		}

		if err = s.postRepo.UpdatePostFields(ctx, post.ID, fields); err != nil {
			return err
		}
		if _, err = s.imageRepo.DeletePostImages(ctx, post.ID, removeIDs); err != nil {
			return err
		}
		if len(images) > 0 {
			if _, err = s.imageService.Store(ctx, images, post); err != nil {
				return err
			}
		}
		return nil
	})
}

// updatedFields 只收集非空字段
func updatedFields(req *dto.UpdatePostDTO) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if !util.IsBlank(&req.Title) {
		fields["title"] = strings.TrimSpace(req.Title)
	}
	if !util.IsBlank(&req.Content) {
		fields["content"] = req.Content
	}
	if !util.IsBlank(&req.Type) {
		postType, ok := model.ParsePostType(req.Type)
		if !ok {
			return nil, ErrParamInvalid
		}
		fields["type"] = postType
	}
	return fields, nil
}

// selectRemovals 只保留当前挂载在帖子上的图片，去重
func selectRemovals(currentIDs, requested []uint64) []uint64 {
	current := make(map[uint64]struct{}, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = struct{}{}
	}
	removeIDs := make([]uint64, 0, len(requested))
	for _, id := range requested {
		if _, ok := current[id]; !ok {
			continue
		}
		delete(current, id)
		removeIDs = append(removeIDs, id)
	}
	return removeIDs
}

// DeletePost 已删除的帖子再次删除返回 ErrPostNotFound
func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.IsActive() {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrForbidden
	}
	return s.markDeleted(ctx, post.ID)
}

// AdminDeletePost 管理员删除，不校验作者
func (s *postServiceImpl) AdminDeletePost(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if !post.IsActive() {
		return ErrPostNotFound
	}
	return s.markDeleted(ctx, post.ID)
}

func (s *postServiceImpl) markDeleted(ctx context.Context, postID uint64) error {
	rows, err := s.postRepo.MarkPostDeleted(ctx, postID)
	if err != nil {
		return err
	}
	// 并发删除时只有一方成功
	if rows == 0 {
		return ErrPostNotFound
	}
	log.InfoContext(ctx, "post deleted", "post_id", postID)

	// 热门缓存可能包含该帖子，下次读取时回源
	if err = redis.DeleteKey(ctx, consts.PostTop10Key); err != nil {
		log.WarnContext(ctx, "failed to invalidate top10 cache", "post_id", postID, "err", err)
	}
	return nil
}

// GetPostDetail 返回详情并原地增加浏览数
func (s *postServiceImpl) GetPostDetail(ctx context.Context, postID uint64) (*dto.PostDetailDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsActive() {
		return nil, ErrPostNotFound
	}

	detail := &dto.PostDetailDTO{
		ID:              post.ID,
		Title:           post.Title,
		Content:         post.Content,
		CreatedAt:       post.CreatedAt,
		UserID:          post.UserID,
		Nickname:        post.Nickname,
		ProfileImageURL: post.User.ProfileImageURL(s.defaultProfileURL),
		PostType:        string(post.Type),
		Images:          make([]*dto.PostImageDTO, 0, len(post.Images)),
	}
	for _, pi := range post.Images {
		detail.Images = append(detail.Images, &dto.PostImageDTO{ImageID: pi.ImageID, URL: pi.Image.URL})
	}
	if post.Status != nil {
		detail.ViewCount = post.Status.ViewCount
		detail.LikeCount = post.Status.LikeCount
		detail.CommentCount = post.Status.CommentCount
	}

	if err = s.postStatusRepo.IncrementViewCount(ctx, post.ID); err != nil {
		log.WarnContext(ctx, "failed to increment view count", "post_id", post.ID, "err", err)
	} else {
		detail.ViewCount++
	}

	return detail, nil
}
