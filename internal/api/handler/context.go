package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/panelkit/admin-console/internal/api/middleware"
	"github.com/panelkit/admin-console/internal/core/domain"
)

// currentIdentity returns a copy of the identity injected by the guard or
// session middleware. Its absence means the route was wired without either.
func currentIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || id.Email == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	return id, nil
}
