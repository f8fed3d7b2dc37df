package middleware

import (
	"Community/internal/pkg/consts"
	"Community/internal/pkg/response"
	"Community/internal/service"
	log "log/slog"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 需挂在 AuthMiddleware 之后，会话角色不在 allowed 中时返回 403
func CheckRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.CtxRoles)
		permitted := slices.ContainsFunc(roles, func(role string) bool {
			return slices.Contains(allowed, role)
		})
		if !permitted {
			log.WarnContext(c.Request.Context(), "role check rejected", "roles", roles, "path", c.FullPath())
			response.Error(c, service.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
