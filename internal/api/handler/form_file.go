package handler

import (
	"Community/internal/pkg/upload"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

// formFiles 读取 multipart 中的文件，超过 maxSize 的文件不读取内容，交给校验逻辑拒绝
func formFiles(c *gin.Context, field string, maxSize int64) ([]*upload.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File[field]
	files := make([]*upload.File, 0, len(headers))
	for _, fh := range headers {
		f, err := toUploadFile(fh, maxSize)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// formFile 单文件字段，缺失时返回 nil
func formFile(c *gin.Context, field string, maxSize int64) (*upload.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return toUploadFile(fh, maxSize)
}

func toUploadFile(fh *multipart.FileHeader, maxSize int64) (*upload.File, error) {
	f := &upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if fh.Size == 0 || fh.Size > maxSize {
		return f, nil
	}

	reader, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file: %w", err)
	}
	defer func() { _ = reader.Close() }()

	f.Content, err = io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	f.Size = int64(len(f.Content))
	return f, nil
}
