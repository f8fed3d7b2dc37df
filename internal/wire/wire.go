package wire

import (
	"Community/internal/api"
	"Community/internal/api/config"
	"Community/internal/api/handler"
	"Community/internal/api/middleware"
	"Community/internal/job"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/cron"
	"Community/internal/pkg/kafka"
	"Community/internal/pkg/redis"
	"Community/internal/pkg/session"
	"Community/internal/pkg/upload"
	"Community/internal/repository"
	"Community/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	// KafkaManager 未开启 Kafka 时为 nil
	KafkaManager *kafka.ConsumerManager
}

// NewUploader 按配置选择图片存储
func NewUploader(cfg config.ImageConfig) upload.Uploader {
	if cfg.Storage == "minio" {
		return upload.NewMinioUploader()
	}
	return upload.NewGatewayUploader(cfg.Gateway)
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	postStatusRepo := repository.NewPostStatusRepo(db)
	imageRepo := repository.NewImageRepo(db)
	tx := repository.NewTransactor(db)

	uploader := NewUploader(cfg.Image)
	sessionStore := session.NewRedisStore(redis.GetRdbClient(), consts.SessionKeyPrefix)
	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second
	cookie := session.CookieOptions{
		Name:   cfg.Session.CookieName,
		TTL:    sessionTTL,
		Secure: cfg.Session.CookieSecure,
	}

	imageService := service.NewImageService(imageRepo, tx, uploader, cfg.Image.MaxSize)
	sessionService := service.NewSessionService(sessionStore, userRepo, sessionTTL, cfg.Image.DefaultProfileURL)
	userService := service.NewUserService(userRepo, imageService, tx, cfg.Image.DefaultProfileURL)
	postService := service.NewPostService(
		postRepo, postStatusRepo, imageRepo, userRepo, imageService, tx,
		cfg.Image.MaxCount, cfg.Image.DefaultProfileURL,
	)
	feedService := service.NewFeedService(postRepo, time.Duration(cfg.Feed.Top10CacheTTL)*time.Second, cfg.Image.DefaultProfileURL)
	postStatusService := service.NewPostStatusService(postStatusRepo)

	handlers := &api.HandlersGroup{
		UserHandler:  handler.NewUserHandler(userService, sessionService, cookie, cfg.Image.MaxSize),
		PostHandler:  handler.NewPostHandler(postService, feedService, cfg.Image.MaxSize),
		ImageHandler: handler.NewImageHandler(imageService, cfg.Image.MaxSize),
		Auth:         middleware.AuthMiddleware(sessionService, cookie),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewTop10RefreshJob(feedService),
		job.NewImageCleanupJob(imageService),
	)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, postStatusService)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
