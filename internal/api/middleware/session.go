package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RequireSession admits only authenticated sessions and injects the identity.
// Unlike Guard it answers with status codes, never redirects, which suits the
// JSON endpoints under /auth.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := sessions.Snapshot()
			if sess.IsLoading() {
				c.Response().Header().Set("Retry-After", strconv.Itoa(loadingRetryAfter))
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session is loading")
			}
			if !sess.IsAuthenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
			}

			c.Set(IdentityKey, *sess.Identity)
			return next(c)
		}
	}
}
