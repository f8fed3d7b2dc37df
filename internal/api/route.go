package api

import (
	"Community/internal/api/middleware"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	r.MaxMultipartMemory = 32 << 20

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"code":    "OK",
			"message": "pong",
			"data":    nil,
		})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", group.UserHandler.Login)
		authGroup.DELETE("/logout", group.UserHandler.Logout)
	}

	userGroup := r.Group("/users")
	{
		userGroup.POST("", group.UserHandler.Register)
		userGroup.GET("/me", group.Auth, group.UserHandler.GetProfile)
	}

	postGroup := r.Group("/posts")
	{
		// 无需登录即可访问的接口
		postGroup.GET("", group.PostHandler.ListPosts)
		postGroup.GET("/popular", group.PostHandler.ListPopularPosts)
		postGroup.GET("/search", group.PostHandler.SearchByNickname)
		postGroup.GET("/top10", group.PostHandler.ListTop10)
		postGroup.GET("/gallery", group.PostHandler.ListGallery)
		postGroup.GET("/:post_id", group.PostHandler.GetPost)

		authPostGroup := postGroup.Group("")
		authPostGroup.Use(group.Auth)
		{
			authPostGroup.POST("", group.PostHandler.CreatePost)
			authPostGroup.PATCH("/:post_id", group.PostHandler.UpdatePost)
			authPostGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
		}
	}

	imageGroup := r.Group("/images")
	{
		imageGroup.GET("/status", group.ImageHandler.Status)
		imageGroup.POST("", group.Auth, group.ImageHandler.Upload)
	}

	// 需要登录 & 拥有 admin 角色
	adminGroup := r.Group("/admin")
	adminGroup.Use(group.Auth, middleware.CheckRoles(consts.RoleAdmin))
	{
		adminGroup.DELETE("/posts/:post_id", group.PostHandler.AdminDeletePost)
	}

	return r
}
