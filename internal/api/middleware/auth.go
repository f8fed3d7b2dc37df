package middleware

import (
	"Community/internal/pkg/consts"
	"Community/internal/pkg/response"
	"Community/internal/pkg/session"
	"Community/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验会话 Cookie 并将用户身份注入 Context，成功后续期 Cookie
func AuthMiddleware(sessions service.SessionService, cookie session.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := session.ExtractToken(c.Request, cookie.Name)
		if !ok {
			response.Error(c, service.ErrInvalidSession)
			c.Abort()
			return
		}

		principal, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		session.SetCookie(c, cookie, token)
		setPrincipal(c, principal)

		c.Next()
	}
}

func setPrincipal(c *gin.Context, principal *service.Principal) {
	c.Set(consts.CtxUserID, principal.UserID)
	c.Set(consts.CtxRoles, []string{principal.Role})

	newCtx := context.WithValue(c.Request.Context(), consts.CtxUserID, principal.UserID)
	c.Request = c.Request.WithContext(newCtx)
}
