package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	UIDCookie  = "AGRO_UID"
	UIDHeader  = "X-User-Id"
	DefaultUID = "dev-user"
)

func setUIDCookie(c echo.Context, uid string) {
	c.SetCookie(&http.Cookie{Name: UIDCookie, Value: uid, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// DevLogin trusts the AGRO_UID cookie or ?uid= and falls back to a shared
// development user. Only for local use.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(UIDCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DefaultUID
				}
				setUIDCookie(c, uid)
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
