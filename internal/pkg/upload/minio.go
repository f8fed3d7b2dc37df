package upload

import (
	"Community/internal/pkg/minio"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var extByContentType = map[string]string{
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MinioUploader 直接写入对象存储
type MinioUploader struct{}

func NewMinioUploader() *MinioUploader {
	return &MinioUploader{}
}

func (s *MinioUploader) Upload(ctx context.Context, target Target, f *File) (string, error) {
	ext, ok := extByContentType[strings.ToLower(f.ContentType)]
	if !ok {
		ext = path.Ext(f.Filename)
	}
	objectName := fmt.Sprintf("%s/%s/%s%s", target, time.Now().Format("2006/01/02"), uuid.NewString(), ext)

	key, err := minio.UploadFile(ctx, objectName, bytes.NewReader(f.Content), int64(len(f.Content)), f.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return minio.GetPublicURL(key), nil
}

func (s *MinioUploader) Delete(ctx context.Context, url string) error {
	objectName, ok := minio.ObjectNameFromURL(url)
	if !ok {
		return nil
	}
	return minio.DeleteFile(ctx, objectName)
}
