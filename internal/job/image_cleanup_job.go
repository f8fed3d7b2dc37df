package job

import (
	"Community/internal/pkg/consts"
	"Community/internal/pkg/logger"
	"Community/internal/pkg/redis"
	"Community/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	orphanImageTTL   = 24 * time.Hour
	orphanImageBatch = 500
)

// ImageCleanupJob 清理超过一天仍未被帖子或头像引用的图片
type ImageCleanupJob struct {
	imageSvc service.ImageService
}

func NewImageCleanupJob(imageSvc service.ImageService) *ImageCleanupJob {
	return &ImageCleanupJob{imageSvc: imageSvc}
}

func (s *ImageCleanupJob) Run() {
	traceID := "job-image-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	ok, err := redis.TryLock(ctx, consts.ImageCleanupLock, traceID, 10*time.Minute, 1)
	if err != nil {
		log.ErrorContext(ctx, "image cleanup lock error", "err", err)
		return
	}
	if !ok {
		return
	}
	defer redis.UnLock(ctx, consts.ImageCleanupLock, traceID)

	total := 0
	for {
		n, err := s.imageSvc.CleanupOrphans(ctx, orphanImageTTL, orphanImageBatch)
		if err != nil {
			log.ErrorContext(ctx, "image cleanup failed", "err", err)
			break
		}
		total += n
		if n < orphanImageBatch {
			break
		}
	}

	if total > 0 {
		log.InfoContext(ctx, "image cleanup job finished", "cleaned_count", total)
	}
}
