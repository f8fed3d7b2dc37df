package service

import (
	"Community/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

type PostStatusService interface {
	ApplyCounterDelta(ctx context.Context, postID uint64, counter string, delta int64) error
}

type postStatusServiceImpl struct {
	postStatusRepo repository.PostStatusRepo
}

func NewPostStatusService(postStatusRepo repository.PostStatusRepo) PostStatusService {
	return &postStatusServiceImpl{postStatusRepo: postStatusRepo}
}

// ApplyCounterDelta 计数事件落库，帖子不存在时忽略
func (s *postStatusServiceImpl) ApplyCounterDelta(ctx context.Context, postID uint64, counter string, delta int64) error {
	if postID == 0 || delta == 0 {
		return nil
	}

	rows, err := s.postStatusRepo.AddCount(ctx, postID, repository.Counter(counter), delta)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownCounter) {
			return ErrParamInvalid
		}
		return err
	}
	if rows == 0 {
		log.WarnContext(ctx, "post status not found, counter event dropped", "post_id", postID, "counter", counter)
	}
	return nil
}
