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

// Top10RefreshJob 定时重算点赞 Top10 并写入缓存
type Top10RefreshJob struct {
	feedSvc service.FeedService
}

func NewTop10RefreshJob(feedSvc service.FeedService) *Top10RefreshJob {
	return &Top10RefreshJob{feedSvc: feedSvc}
}

func (s *Top10RefreshJob) Run() {
	traceID := "job-top10-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只需一个实例执行
	ok, err := redis.TryLock(ctx, consts.PostTop10Lock, traceID, 30*time.Second, 1)
	if err != nil {
		log.ErrorContext(ctx, "top10 refresh lock error", "err", err)
		return
	}
	if !ok {
		return
	}
	defer redis.UnLock(ctx, consts.PostTop10Lock, traceID)

	if err = s.feedSvc.RefreshTop10(ctx); err != nil {
		log.ErrorContext(ctx, "top10 refresh failed", "err", err)
		return
	}
	log.InfoContext(ctx, "top10 cache refreshed")
}
