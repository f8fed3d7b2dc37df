package handler

import (
	"Community/internal/pkg/response"
	"Community/internal/service"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageSvc     service.ImageService
	maxImageSize int64
}

func NewImageHandler(imageSvc service.ImageService, maxImageSize int64) *ImageHandler {
	return &ImageHandler{
		imageSvc:     imageSvc,
		maxImageSize: maxImageSize,
	}
}

// Upload 上传不挂载到帖子的图片
func (s *ImageHandler) Upload(c *gin.Context) {
	images, err := formFiles(c, "images", s.maxImageSize)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if _, err = s.imageSvc.Store(c.Request.Context(), images, nil); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, nil)
}

func (s *ImageHandler) Status(c *gin.Context) {
	count, err := s.imageSvc.Count(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, count)
}
