package service

import (
	"Community/internal/api/dto"
	"Community/internal/model"
	"Community/internal/pkg/upload"
	"context"
	"errors"
	"testing"
	"time"
)

func TestImageValidate(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		file    *upload.File
		wantErr error
	}{
		{"png ok", pngFile("a.png"), nil},
		{"content type with params", &upload.File{ContentType: "image/JPEG; q=1", Size: 10}, nil},
		{"nil file", nil, ErrEmptyImage},
		{"zero bytes", &upload.File{ContentType: "image/png"}, ErrEmptyImage},
		{"pdf", &upload.File{ContentType: "application/pdf", Size: 10}, ErrBadContentType},
		{"missing content type", &upload.File{Size: 10}, ErrBadContentType},
		{"unsupported image", &upload.File{ContentType: "image/svg+xml", Size: 10}, ErrBadContentType},
		{"six mebibytes", &upload.File{ContentType: "image/png", Size: 6 << 20}, ErrTooLarge},
		{"exactly the limit", &upload.File{ContentType: "image/png", Size: testMaxImageSize}, nil},
		// 空文件优先于类型检查
		{"empty pdf", &upload.File{ContentType: "application/pdf"}, ErrEmptyImage},
		// 类型检查优先于大小检查
		{"huge pdf", &upload.File{ContentType: "application/pdf", Size: 6 << 20}, ErrBadContentType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.images.Validate(tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImageStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.images.Store(ctx, nil, nil); !errors.Is(err, ErrEmptyImage) {
			t.Errorf("Store(nil) error = %v, want ErrEmptyImage", err)
		}
	})

	t.Run("invalid file rejects whole batch before upload", func(t *testing.T) {
		env := newTestEnv(t)
		files := []*upload.File{pngFile("ok.png"), {Filename: "doc.pdf", ContentType: "application/pdf", Size: 10}}
		if _, err := env.images.Store(ctx, files, nil); !errors.Is(err, ErrBadContentType) {
			t.Fatalf("Store() error = %v, want ErrBadContentType", err)
		}
		if len(env.uploader.targets) != 0 {
			t.Errorf("uploaded %d files, want 0", len(env.uploader.targets))
		}
	})

	t.Run("gateway failure writes nothing", func(t *testing.T) {
		env := newTestEnv(t)
		env.uploader.fail = true
		if _, err := env.images.Store(ctx, pngFiles(2), nil); !errors.Is(err, ErrServerError) {
			t.Fatalf("Store() error = %v, want ErrServerError", err)
		}
		if n := env.countRows(t, &model.Image{}); n != 0 {
			t.Errorf("images rows = %d, want 0", n)
		}
	})

	t.Run("stores standalone images", func(t *testing.T) {
		env := newTestEnv(t)
		images, err := env.images.Store(ctx, pngFiles(2), nil)
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if len(images) != 2 || images[0].ID == 0 {
			t.Fatalf("Store() = %+v", images)
		}
		count, err := env.images.Count(ctx)
		if err != nil || count.Count != 2 {
			t.Errorf("Count() = %+v, %v, want 2", count, err)
		}
		if n := env.countRows(t, &model.PostImage{}); n != 0 {
			t.Errorf("post_images rows = %d, want 0", n)
		}
	})
}

func TestImageSaveOneUsesProfileTarget(t *testing.T) {
	env := newTestEnv(t)
	image, err := env.images.SaveOne(context.Background(), pngFile("me.png"))
	if err != nil {
		t.Fatalf("SaveOne() error = %v", err)
	}
	if image.ID == 0 || image.URL == "" {
		t.Errorf("SaveOne() = %+v", image)
	}
	if len(env.uploader.targets) != 1 || env.uploader.targets[0] != upload.TargetProfile {
		t.Errorf("targets = %v, want [profile]", env.uploader.targets)
	}
}

func TestImageCleanupOrphans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	standalone, err := env.images.Store(ctx, pngFiles(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	userID := env.createUser(t, "alice", "password123")
	postID, err := env.posts.CreatePost(ctx, userID, postFields("kept", "body"), pngFiles(2))
	if err != nil {
		t.Fatal(err)
	}
	detail, err := env.posts.GetPostDetail(ctx, postID)
	if err != nil {
		t.Fatal(err)
	}
	detached := detail.Images[0].ImageID
	if err = env.posts.UpdatePost(ctx, userID, postID, &dto.UpdatePostDTO{RemoveImageIDs: []uint64{detached}}, nil); err != nil {
		t.Fatal(err)
	}

	// 刚移除的图片还在保留期内
	removed, err := env.images.CleanupOrphans(ctx, time.Hour, 100)
	if err != nil || removed != 0 {
		t.Fatalf("CleanupOrphans(1h) = %d, %v, want 0", removed, err)
	}

	if err = env.db.Model(&model.Image{}).Where("1 = 1").
		Update("created_at", time.Now().Add(-25*time.Hour)).Error; err != nil {
		t.Fatal(err)
	}
	removed, err = env.images.CleanupOrphans(ctx, 24*time.Hour, 500)
	if err != nil {
		t.Fatalf("CleanupOrphans() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if len(env.uploader.deleted) != 1 {
		t.Errorf("deleted objects = %v", env.uploader.deleted)
	}

	var left []uint64
	if err = env.db.Model(&model.Image{}).Order("id ASC").Pluck("id", &left).Error; err != nil {
		t.Fatal(err)
	}
	for _, id := range left {
		if id == detached {
			t.Errorf("detached image %d survived cleanup", id)
		}
	}
	// 独立上传的图片永久保留
	count, err := env.images.Count(ctx)
	if err != nil || count.Count != int64(len(standalone)+1) {
		t.Errorf("Count() = %+v, %v, want %d", count, err, len(standalone)+1)
	}

	detail, err = env.posts.GetPostDetail(ctx, postID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Images) != 1 {
		t.Errorf("post images = %d, want 1", len(detail.Images))
	}
}
