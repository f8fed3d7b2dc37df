package upload

import (
	"Community/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

type gatewayResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		FilePath string `json:"filePath"`
	} `json:"data"`
}

// GatewayUploader 以原始字节 POST 到图片网关
type GatewayUploader struct {
	client     *resty.Client
	postURL    string
	profileURL string
}

func NewGatewayUploader(cfg config.GatewayConfig) *GatewayUploader {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &GatewayUploader{
		client:     client,
		postURL:    cfg.PostURL,
		profileURL: cfg.ProfileURL,
	}
}

func (s *GatewayUploader) Upload(ctx context.Context, target Target, f *File) (string, error) {
	url := s.postURL
	if target == TargetProfile {
		url = s.profileURL
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(f.Content).
		Post(url)
	if err != nil {
		log.ErrorContext(ctx, "image gateway request failed", "url", url, "err", err)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.IsError() {
		log.ErrorContext(ctx, "image gateway returned error", "url", url, "status", resp.StatusCode())
		return "", fmt.Errorf("%w: gateway status %d", ErrUpload, resp.StatusCode())
	}

	var body gatewayResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		log.ErrorContext(ctx, "image gateway response malformed", "url", url, "err", err)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if body.Data == nil || body.Data.FilePath == "" {
		log.ErrorContext(ctx, "image gateway response missing filePath", "url", url, "message", body.Message)
		return "", fmt.Errorf("%w: missing filePath", ErrUpload)
	}

	return body.Data.FilePath, nil
}
