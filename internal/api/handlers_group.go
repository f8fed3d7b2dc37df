package api

import (
	"Community/internal/api/handler"

	"github.com/gin-gonic/gin"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例与鉴权中间件
type HandlersGroup struct {
	UserHandler  *handler.UserHandler
	PostHandler  *handler.PostHandler
	ImageHandler *handler.ImageHandler

	Auth gin.HandlerFunc
}
