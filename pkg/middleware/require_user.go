package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser reads the user id set by the fronting gateway, from the
// X-User-Id header or the AGRO_UID cookie, and answers 401 without one.
// When enabled is false it passes through; use DevLogin instead.
func RequireUser(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			uid := c.Request().Header.Get(UIDHeader)
			if uid == "" {
				if ck, err := c.Cookie(UIDCookie); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user id"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
