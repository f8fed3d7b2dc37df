package service

import (
	"Community/internal/model"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/redis"
	"Community/internal/pkg/security"
	"Community/internal/pkg/session"
	"Community/internal/pkg/upload"
	"Community/internal/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testMaxImageSize   = 5 << 20
	testMaxImages      = 5
	testDefaultProfile = "http://img/default.png"
	testSessionTTL     = 30 * time.Minute
)

var errGatewayDown = errors.New("gateway down")

type fakeUploader struct {
	mu      sync.Mutex
	fail    bool
	targets []upload.Target
	deleted []string
}

func (f *fakeUploader) Upload(_ context.Context, target upload.Target, file *upload.File) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", fmt.Errorf("%w: %v", upload.ErrUpload, errGatewayDown)
	}
	f.targets = append(f.targets, target)
	return fmt.Sprintf("http://img/%s/%d-%s", target, len(f.targets), file.Filename), nil
}

func (f *fakeUploader) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

// testEnv 全部服务共享一个 sqlite 内存库与 miniredis
type testEnv struct {
	db       *gorm.DB
	mr       *miniredis.Miniredis
	uploader *fakeUploader

	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	postStatusRepo repository.PostStatusRepo
	imageRepo      repository.ImageRepo

	images   ImageService
	users    UserService
	posts    PostService
	feeds    FeedService
	sessions SessionService
	statuses PostStatusService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err = db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	prevRdb := redis.Rdb
	redis.Rdb = rdb
	t.Cleanup(func() { redis.Rdb = prevRdb })

	prevCost := security.Cost
	security.Cost = bcrypt.MinCost
	t.Cleanup(func() { security.Cost = prevCost })

	env := &testEnv{
		db:             db,
		mr:             mr,
		uploader:       &fakeUploader{},
		userRepo:       repository.NewUserRepo(db),
		postRepo:       repository.NewPostRepository(db),
		postStatusRepo: repository.NewPostStatusRepo(db),
		imageRepo:      repository.NewImageRepo(db),
	}
	tx := repository.NewTransactor(db)
	env.images = NewImageService(env.imageRepo, tx, env.uploader, testMaxImageSize)
	env.users = NewUserService(env.userRepo, env.images, tx, testDefaultProfile)
	env.posts = NewPostService(env.postRepo, env.postStatusRepo, env.imageRepo, env.userRepo, env.images, tx, testMaxImages, testDefaultProfile)
	env.feeds = NewFeedService(env.postRepo, time.Minute, testDefaultProfile)
	env.sessions = NewSessionService(session.NewRedisStore(rdb, consts.SessionKeyPrefix), env.userRepo, testSessionTTL, testDefaultProfile)
	env.statuses = NewPostStatusService(env.postStatusRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, nickname, password string) uint64 {
	t.Helper()
	hashed, err := security.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	user := &model.User{
		Email:    nickname + "@example.com",
		Password: hashed,
		Nickname: nickname,
		Role:     consts.RoleUser,
	}
	if err = e.userRepo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func (e *testEnv) countRows(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(m).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func pngFile(name string) *upload.File {
	content := []byte("\x89PNG fake image " + name)
	return &upload.File{Filename: name, ContentType: "image/png", Size: int64(len(content)), Content: content}
}

func pngFiles(n int) []*upload.File {
	files := make([]*upload.File, 0, n)
	for i := 0; i < n; i++ {
		files = append(files, pngFile(fmt.Sprintf("img-%d.png", i)))
	}
	return files
}
