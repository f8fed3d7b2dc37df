package upload

import (
	"context"
	"errors"
)

// ErrUpload 上传网关或对象存储失败
var ErrUpload = errors.New("image upload failed")

// Target 决定图片上传到哪个端点
type Target string

const (
	TargetPost    Target = "post"
	TargetProfile Target = "profile"
)

type File struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

type Uploader interface {
	// Upload 返回可公开访问的图片地址
	Upload(ctx context.Context, target Target, f *File) (string, error)
}

// Deleter 支持删除已上传对象的存储实现
type Deleter interface {
	Delete(ctx context.Context, url string) error
}
