package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieOptions 会话 Cookie 的属性
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// ExtractToken Cookie 缺失时返回 false，不视为错误
func ExtractToken(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func SetCookie(c *gin.Context, opts CookieOptions, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, token, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
}

// ClearCookie 写出空值且 Max-Age=0
func ClearCookie(c *gin.Context, opts CookieOptions) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
