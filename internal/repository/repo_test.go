package repository

import (
	"Community/internal/model"
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	// :memory: 每个连接是独立的库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, nickname string) *model.User {
	t.Helper()
	user := &model.User{
		Email:    nickname + "@example.com",
		Password: "hashed",
		Nickname: nickname,
		Role:     "USER",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedPost(t *testing.T, db *gorm.DB, user *model.User, title string, likes int64) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:   user.ID,
		Title:    title,
		Content:  "content of " + title,
		Nickname: user.Nickname,
		Type:     model.PostTypeInProgress,
		State:    model.PostStateActive,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	if err := db.Create(&model.PostStatus{PostID: post.ID, LikeCount: likes}).Error; err != nil {
		t.Fatalf("seed post status: %v", err)
	}
	return post
}

func seedPosts(t *testing.T, db *gorm.DB, user *model.User, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, seedPost(t, db, user, fmt.Sprintf("post-%d", i), 0))
	}
	return posts
}

func TestTransactorRollback(t *testing.T) {
	db := newTestDB(t)
	tx := NewTransactor(db)
	userRepo := NewUserRepo(db)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := userRepo.CreateUser(ctx, &model.User{Email: "a@example.com", Password: "x", Nickname: "alice"}); err != nil {
			return err
		}
		// 嵌套调用复用外层事务
		return tx.Transaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	if err != boom {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}

	user, err := userRepo.GetUserByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if user != nil {
		t.Errorf("user should have been rolled back, got id %d", user.ID)
	}
}

func TestUserRepoLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	img := &model.Image{URL: "http://img/avatar.png"}
	if err := db.Create(img).Error; err != nil {
		t.Fatal(err)
	}
	user := &model.User{Email: "bob@example.com", Password: "x", Nickname: "bob", ImageID: &img.ID}
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	byNick, err := repo.GetUserByNickname(ctx, "bob")
	if err != nil || byNick == nil {
		t.Fatalf("GetUserByNickname() = %v, %v", byNick, err)
	}
	if got := byNick.ProfileImageURL("fallback"); got != img.URL {
		t.Errorf("ProfileImageURL() = %q, want %q", got, img.URL)
	}

	missing, err := repo.GetUserById(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("GetUserById(missing) = %v, %v, want nil, nil", missing, err)
	}

	dup := &model.User{Email: "bob@example.com", Password: "x", Nickname: "bobby"}
	if err = repo.CreateUser(ctx, dup); err == nil {
		t.Error("CreateUser() with duplicate email should fail")
	}
}

func TestListLatestPagesAreDisjointAndContiguous(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	posts := seedPosts(t, db, user, 7)

	seen := make([]uint64, 0, len(posts))
	var cursor *uint64
	for page := 0; page < 4; page++ {
		rows, err := repo.ListLatest(ctx, cursor, 3)
		if err != nil {
			t.Fatalf("ListLatest() error = %v", err)
		}
		for _, r := range rows {
			seen = append(seen, r.ID)
		}
		if len(rows) < 3 {
			break
		}
		last := rows[len(rows)-1].ID
		cursor = &last
	}

	if len(seen) != len(posts) {
		t.Fatalf("saw %d posts across pages, want %d", len(seen), len(posts))
	}
	for i, id := range seen {
		want := posts[len(posts)-1-i].ID
		if id != want {
			t.Errorf("position %d: id = %d, want %d", i, id, want)
		}
	}
}

func TestLockPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	tx := NewTransactor(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	post := seedPost(t, db, user, "p", 0)

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := repo.LockPost(ctx, post.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.UserID != user.ID || !locked.IsActive() {
			t.Errorf("LockPost() = %+v", locked)
		}
		missing, err := repo.LockPost(ctx, 404)
		if err != nil || missing != nil {
			t.Errorf("LockPost(missing) = %+v, %v, want nil, nil", missing, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction() error = %v", err)
	}
}

func TestListLatestSkipsDeletedPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	posts := seedPosts(t, db, user, 3)

	rows, err := repo.MarkPostDeleted(ctx, posts[1].ID)
	if err != nil || rows != 1 {
		t.Fatalf("MarkPostDeleted() = %d, %v", rows, err)
	}
	// 已删除的帖子不会再次被标记
	rows, err = repo.MarkPostDeleted(ctx, posts[1].ID)
	if err != nil || rows != 0 {
		t.Fatalf("second MarkPostDeleted() = %d, %v, want 0", rows, err)
	}

	list, err := repo.ListLatest(ctx, nil, 10)
	if err != nil {
		t.Fatalf("ListLatest() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListLatest() returned %d rows, want 2", len(list))
	}
	for _, r := range list {
		if r.ID == posts[1].ID {
			t.Errorf("deleted post %d still listed", r.ID)
		}
	}

	got, err := repo.GetPost(ctx, posts[1].ID)
	if err != nil || got == nil {
		t.Fatalf("GetPost(deleted) = %v, %v", got, err)
	}
	if got.IsActive() {
		t.Error("deleted post reported as active")
	}
}

func TestListPopularRespectsWindowAndLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	low := seedPost(t, db, user, "low", 1)
	high := seedPost(t, db, user, "high", 9)
	old := seedPost(t, db, user, "old", 100)
	if err := db.Model(&model.Post{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatal(err)
	}

	rows, err := repo.ListPopular(ctx, time.Now().Add(-24*time.Hour), 0, 10)
	if err != nil {
		t.Fatalf("ListPopular() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListPopular() returned %d rows, want 2", len(rows))
	}
	if rows[0].ID != high.ID || rows[1].ID != low.ID {
		t.Errorf("order = [%d %d], want [%d %d]", rows[0].ID, rows[1].ID, high.ID, low.ID)
	}
	if rows[0].LikeCount != 9 {
		t.Errorf("LikeCount = %d, want 9", rows[0].LikeCount)
	}

	second, err := repo.ListPopular(ctx, time.Now().Add(-24*time.Hour), 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 1 || second[0].ID != low.ID {
		t.Errorf("offset page = %+v, want post %d", second, low.ID)
	}
}

func TestListByNicknameAndWithImage(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	imageRepo := NewImageRepo(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	a1 := seedPost(t, db, alice, "a1", 0)
	seedPost(t, db, bob, "b1", 0)

	images := []*model.Image{{URL: "http://img/1.png"}, {URL: "http://img/2.png"}}
	if err := imageRepo.CreateImages(ctx, images); err != nil {
		t.Fatal(err)
	}
	if err := imageRepo.CreatePostImages(ctx, []*model.PostImage{
		{PostID: a1.ID, ImageID: images[0].ID},
		{PostID: a1.ID, ImageID: images[1].ID},
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := repo.ListByNickname(ctx, "alice", nil, 10)
	if err != nil {
		t.Fatalf("ListByNickname() error = %v", err)
	}
	if len(rows) != 1 || rows[0].ID != a1.ID {
		t.Fatalf("ListByNickname() = %+v, want only post %d", rows, a1.ID)
	}

	gallery, err := repo.ListLatestWithImage(ctx, 10)
	if err != nil {
		t.Fatalf("ListLatestWithImage() error = %v", err)
	}
	urls := make(map[uint64]string, len(gallery))
	for _, r := range gallery {
		urls[r.ID] = r.PostImageURL
	}
	if urls[a1.ID] != "http://img/1.png" {
		t.Errorf("first image of post %d = %q, want http://img/1.png", a1.ID, urls[a1.ID])
	}
}

func TestPostStatusAddCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostStatusRepo(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	post := seedPost(t, db, user, "p", 2)

	tests := []struct {
		name    string
		counter Counter
		delta   int64
		wantErr bool
		want    int64
	}{
		{"increment likes", CounterLike, 3, false, 5},
		{"decrement clamps at zero", CounterLike, -10, false, 0},
		{"unknown counter", Counter("share"), 1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.AddCount(ctx, post.ID, tt.counter, tt.delta)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddCount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			status, err := repo.GetStatus(ctx, post.ID)
			if err != nil || status == nil {
				t.Fatalf("GetStatus() = %v, %v", status, err)
			}
			if status.LikeCount != tt.want {
				t.Errorf("LikeCount = %d, want %d", status.LikeCount, tt.want)
			}
		})
	}

	if err := repo.IncrementViewCount(ctx, post.ID); err != nil {
		t.Fatalf("IncrementViewCount() error = %v", err)
	}
	status, _ := repo.GetStatus(ctx, post.ID)
	if status.ViewCount != 1 {
		t.Errorf("ViewCount = %d, want 1", status.ViewCount)
	}

	rows, err := repo.AddCount(ctx, 404, CounterView, 1)
	if err != nil || rows != 0 {
		t.Errorf("AddCount(missing post) = %d, %v, want 0, nil", rows, err)
	}
}

func TestGetOrphanImages(t *testing.T) {
	db := newTestDB(t)
	repo := NewImageRepo(db)
	ctx := context.Background()

	user := seedUser(t, db, "writer")
	post := seedPost(t, db, user, "p", 0)

	images := []*model.Image{
		{URL: "http://img/attached", Source: model.ImageSourcePost},
		{URL: "http://img/avatar", Source: model.ImageSourceProfile},
		{URL: "http://img/orphan", Source: model.ImageSourcePost},
		{URL: "http://img/standalone", Source: model.ImageSourceStandalone},
	}
	if err := repo.CreateImages(ctx, images); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreatePostImages(ctx, []*model.PostImage{{PostID: post.ID, ImageID: images[0].ID}}); err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("image_id", images[1].ID).Error; err != nil {
		t.Fatal(err)
	}

	orphans, err := repo.GetOrphanImages(ctx, time.Now().Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("GetOrphanImages() error = %v", err)
	}
	if len(orphans) != 1 || orphans[0].ID != images[2].ID {
		t.Fatalf("GetOrphanImages() = %+v, want only image %d", orphans, images[2].ID)
	}

	fresh, err := repo.GetOrphanImages(ctx, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(fresh) != 0 {
		t.Errorf("images newer than cutoff should be kept, got %d", len(fresh))
	}

	if err = repo.DeleteImages(ctx, []uint64{images[2].ID}); err != nil {
		t.Fatalf("DeleteImages() error = %v", err)
	}
	count, _ := repo.CountImages(ctx)
	if count != 3 {
		t.Errorf("CountImages() = %d, want 3", count)
	}

	removed, err := repo.DeletePostImages(ctx, post.ID, []uint64{images[0].ID})
	if err != nil || removed != 1 {
		t.Errorf("DeletePostImages() = %d, %v, want 1", removed, err)
	}
	ids, _ := repo.GetPostImageIDs(ctx, post.ID)
	if len(ids) != 0 {
		t.Errorf("GetPostImageIDs() = %v, want empty", ids)
	}
}
