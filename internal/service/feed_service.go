package service

import (
	"Community/internal/api/dto"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/redis"
	"Community/internal/pkg/util"
	"Community/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

// popularPeriods 热门列表的时间窗口
var popularPeriods = map[string]time.Duration{
	"daily":  24 * time.Hour,
	"weekly": 7 * 24 * time.Hour,
}

type FeedService interface {
	ListFeed(ctx context.Context, cursor *uint64, size int) (*dto.FeedPageDTO, error)
	ListPopular(ctx context.Context, period string, page *int, size int) (*dto.FeedPageDTO, error)
	ListByNickname(ctx context.Context, nickname string, cursor *uint64, size int) (*dto.FeedPageDTO, error)
	ListTop10(ctx context.Context) (*dto.FeedPageDTO, error)
	RefreshTop10(ctx context.Context) error
	ListWithImage(ctx context.Context, size int) (*dto.FeedPageDTO, error)
}

type feedServiceImpl struct {
	postRepo          repository.PostRepo
	top10CacheTTL     time.Duration
	defaultProfileURL string
}

func NewFeedService(postRepo repository.PostRepo, top10CacheTTL time.Duration, defaultProfileURL string) FeedService {
	return &feedServiceImpl{
		postRepo:          postRepo,
		top10CacheTTL:     top10CacheTTL,
		defaultProfileURL: defaultProfileURL,
	}
}

// ListFeed 按 ID 倒序，cursor 为上一页最后一条的 ID
func (s *feedServiceImpl) ListFeed(ctx context.Context, cursor *uint64, size int) (*dto.FeedPageDTO, error) {
	size, ok := util.NormalizePageSize(size)
	if !ok {
		return nil, ErrParamInvalid
	}
	rows, err := s.postRepo.ListLatest(ctx, cursor, size)
	if err != nil {
		return nil, err
	}
	return s.idPage(rows, size)
}

// ListPopular 窗口期内按点赞数倒序，cursor 为页码
func (s *feedServiceImpl) ListPopular(ctx context.Context, period string, page *int, size int) (*dto.FeedPageDTO, error) {
	window, ok := popularPeriods[period]
	if !ok {
		return nil, ErrBadFilter
	}
	size, ok = util.NormalizePageSize(size)
	if !ok {
		return nil, ErrParamInvalid
	}
	pageNo := 0
	if page != nil {
		if *page < 0 {
			return nil, ErrParamInvalid
		}
		pageNo = *page
	}

	rows, err := s.postRepo.ListPopular(ctx, time.Now().Add(-window), pageNo*size, size)
	if err != nil {
		return nil, err
	}

	items, err := s.toSummaries(rows)
	if err != nil {
		return nil, err
	}
	nextCursor, hasNext := util.NextPageCursor(len(items), size, pageNo)
	return &dto.FeedPageDTO{Items: items, NextCursor: nextCursor, HasNext: hasNext}, nil
}

func (s *feedServiceImpl) ListByNickname(ctx context.Context, nickname string, cursor *uint64, size int) (*dto.FeedPageDTO, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, ErrParamInvalid
	}
	size, ok := util.NormalizePageSize(size)
	if !ok {
		return nil, ErrParamInvalid
	}
	rows, err := s.postRepo.ListByNickname(ctx, nickname, cursor, size)
	if err != nil {
		return nil, err
	}
	return s.idPage(rows, size)
}

// ListTop10 优先读缓存，未命中时查库并回填
func (s *feedServiceImpl) ListTop10(ctx context.Context) (*dto.FeedPageDTO, error) {
	cached, err := redis.GetValue(ctx, consts.PostTop10Key)
	if err != nil {
		log.WarnContext(ctx, "failed to read top10 cache", "err", err)
	}
	if cached != "" {
		items := make([]*dto.PostSummaryDTO, 0, consts.TopPostLimit)
		if err = json.Unmarshal([]byte(cached), &items); err == nil {
			return &dto.FeedPageDTO{Items: items}, nil
		}
		log.WarnContext(ctx, "discarding malformed top10 cache", "err", err)
	}

	items, err := s.loadTop10(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheTop10(ctx, items)
	return &dto.FeedPageDTO{Items: items}, nil
}

// RefreshTop10 由定时任务调用
func (s *feedServiceImpl) RefreshTop10(ctx context.Context) error {
	items, err := s.loadTop10(ctx)
	if err != nil {
		return err
	}
	s.cacheTop10(ctx, items)
	return nil
}

// ListWithImage 最新一页，附带每个帖子的第一张图片
func (s *feedServiceImpl) ListWithImage(ctx context.Context, size int) (*dto.FeedPageDTO, error) {
	size, ok := util.NormalizePageSize(size)
	if !ok {
		return nil, ErrParamInvalid
	}
	rows, err := s.postRepo.ListLatestWithImage(ctx, size)
	if err != nil {
		return nil, err
	}
	return s.idPage(rows, size)
}

func (s *feedServiceImpl) loadTop10(ctx context.Context) ([]*dto.PostSummaryDTO, error) {
	rows, err := s.postRepo.ListTop(ctx, consts.TopPostLimit)
	if err != nil {
		return nil, err
	}
	return s.toSummaries(rows)
}

func (s *feedServiceImpl) cacheTop10(ctx context.Context, items []*dto.PostSummaryDTO) {
	data, err := json.Marshal(items)
	if err != nil {
		log.WarnContext(ctx, "failed to encode top10 cache", "err", err)
		return
	}
	if err = redis.SetWithExpiration(ctx, consts.PostTop10Key, data, s.top10CacheTTL); err != nil {
		log.WarnContext(ctx, "failed to write top10 cache", "err", err)
	}
}

func (s *feedServiceImpl) idPage(rows []*repository.PostSummary, size int) (*dto.FeedPageDTO, error) {
	items, err := s.toSummaries(rows)
	if err != nil {
		return nil, err
	}
	nextCursor, hasNext := util.NextIDCursor(items, size, func(it *dto.PostSummaryDTO) uint64 {
		return it.ID
	})
	return &dto.FeedPageDTO{Items: items, NextCursor: nextCursor, HasNext: hasNext}, nil
}

func (s *feedServiceImpl) toSummaries(rows []*repository.PostSummary) ([]*dto.PostSummaryDTO, error) {
	items := make([]*dto.PostSummaryDTO, 0, len(rows))
	if err := copier.Copy(&items, &rows); err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ProfileImageURL == "" {
			it.ProfileImageURL = s.defaultProfileURL
		}
	}
	return items, nil
}
