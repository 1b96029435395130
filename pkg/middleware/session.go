package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "AGRIPLAN_UID"
	UIDHeader     = "X-User-Id"
	DevUID        = "U_DEV_DEFAULT"
)

// Session puts the caller's uid in the echo context under "uid". It reads the
// session cookie, then the X-User-Id header. With required=false a missing
// uid falls back to DevUID and the cookie is set; with required=true the
// request is rejected with 401.
func Session(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.Request().Header.Get(UIDHeader)
			}
			if uid == "" {
				if required {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "sign in required"})
				}
				uid = DevUID
				c.SetCookie(&http.Cookie{Name: SessionCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
