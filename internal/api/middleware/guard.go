package middleware

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/api/metrics"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/service"
)

// IdentityKey is the echo.Context key holding the signed-in domain.Identity.
const IdentityKey = "identity"

// loadingRetryAfter is sent with 503 while the session has not settled.
const loadingRetryAfter = 1

// SessionReader exposes the current session.
type SessionReader interface {
	Snapshot() domain.Session
}

// GuardConfig wires one protected view.
type GuardConfig struct {
	Sessions SessionReader
	Guard    *service.RouteGuard
	// Route names the view being opened. Its Path is the menu path, which may
	// differ from the request path (e.g. DELETE /dashboard/users/:id).
	Route service.RouteRequest
	// Fallback renders in place of the 403 when a role annotation fails.
	Fallback echo.HandlerFunc
	Logger   zerolog.Logger
}

// Guard renders the guard decision for every request to the route:
//   - loading: 503 with Retry-After.
//   - redirect_login: 302 to /login?from=<path>.
//   - forbidden: 403.
//   - fallback: cfg.Fallback.
//   - redirect_default: 302 to /dashboard.
//   - render: next, with the identity injected.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	route := cfg.Route
	route.HasFallback = cfg.Fallback != nil

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := cfg.Sessions.Snapshot()
			d := cfg.Guard.Decide(sess, route)

			metrics.GuardDecisionsTotal.WithLabelValues(string(d.Outcome)).Inc()
			cfg.Logger.Debug().
				Str("path", route.Path).
				Str("role", sess.Role().String()).
				Str("outcome", string(d.Outcome)).
				Msg("guard decision")

			switch d.Outcome {
			case service.OutcomeLoading:
				c.Response().Header().Set("Retry-After", strconv.Itoa(loadingRetryAfter))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session is loading"})
			case service.OutcomeRedirectLogin:
				return c.Redirect(http.StatusFound, d.Location+"?"+url.Values{"from": {d.From}}.Encode())
			case service.OutcomeForbidden:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			case service.OutcomeFallback:
				return cfg.Fallback(c)
			case service.OutcomeRedirectDefault:
				return c.Redirect(http.StatusFound, d.Location)
			}

			c.Set(IdentityKey, *sess.Identity)
			return next(c)
		}
	}
}
