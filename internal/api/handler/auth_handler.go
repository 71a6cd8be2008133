package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/panelkit/admin-console/internal/api/metrics"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
	"github.com/panelkit/admin-console/internal/core/service"
)

type AuthHandler struct {
	sessions ports.SessionService
	authz    *service.Authorizer
}

func NewAuthHandler(sessions ports.SessionService, authz *service.Authorizer) *AuthHandler {
	return &AuthHandler{sessions: sessions, authz: authz}
}

// Login authenticates against the credential store and starts the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	res := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	observe(domain.AuditLogin, res, start)
	if !res.OK {
		return attemptError(res)
	}

	return c.JSON(http.StatusOK, h.authResponse(res, req.From))
}

// Register creates an account with the default role and signs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	res := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	observe(domain.AuditRegister, res, start)
	if !res.OK {
		return attemptError(res)
	}

	return c.JSON(http.StatusCreated, h.authResponse(res, ""))
}

// Logout ends the session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the current session snapshot.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// UpdateProfile patches the signed-in identity. Role and email cannot change here.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// Another sign-in may have replaced the session since RequireSession ran.
	if cur := h.sessions.Snapshot().Identity; cur == nil || cur.ID != identity.ID {
		return echo.NewHTTPError(http.StatusConflict, "session changed, reload and retry")
	}

	if req.Name != "" {
		identity.Name = req.Name
	}
	if req.Phone != "" {
		identity.Phone = req.Phone
	}
	if req.AvatarURL != "" {
		identity.AvatarURL = req.AvatarURL
	}

	h.sessions.UpdateIdentity(c.Request().Context(), identity)
	return c.JSON(http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// ClearError dismisses the last authentication error.
//
// @Summary      Clear last error
// @Tags         auth
// @Success      204
// @Router       /auth/error [delete]
func (h *AuthHandler) ClearError(c echo.Context) error {
	h.sessions.ClearError()
	return c.NoContent(http.StatusNoContent)
}

// Menu returns the navigation menu for the signed-in role. Anonymous
// sessions get an empty menu.
//
// @Summary      Navigation menu
// @Tags         auth
// @Produce      json
// @Success      200  {object}  menuResponse
// @Router       /auth/menu [get]
func (h *AuthHandler) Menu(c echo.Context) error {
	role := h.sessions.Snapshot().Role()
	routes := h.authz.RoutesFor(role)
	if routes == nil {
		routes = []string{}
	}
	return c.JSON(http.StatusOK, menuResponse{
		Role:   role,
		Items:  h.authz.MenuFor(role),
		Routes: routes,
	})
}

// LoginView stands in for the login page. Signed-in users are sent on to
// where they were headed.
//
// @Summary      Login view
// @Tags         auth
// @Produce      json
// @Param        from  query     string  false  "Originally requested path"
// @Success      200   {object}  loginViewResponse
// @Success      302
// @Router       /login [get]
func (h *AuthHandler) LoginView(c echo.Context) error {
	from := c.QueryParam("from")
	sess := h.sessions.Snapshot()
	if sess.IsAuthenticated() {
		return c.Redirect(http.StatusFound, h.redirectTarget(sess.Role(), from))
	}
	return c.JSON(http.StatusOK, loginViewResponse{View: "login", From: from})
}

func (h *AuthHandler) authResponse(res ports.AuthResult, from string) authResponse {
	sess := h.sessions.Snapshot()
	return authResponse{
		Token:      res.Token,
		User:       sess.Identity,
		RedirectTo: h.redirectTarget(sess.Role(), from),
	}
}

// redirectTarget returns from when role may open it, else the dashboard.
func (h *AuthHandler) redirectTarget(role domain.Role, from string) string {
	if from != "" && h.authz.HasRoute(role, from) {
		return from
	}
	return domain.PathDashboard
}

func attemptError(res ports.AuthResult) error {
	switch {
	case errors.Is(res.Err, domain.ErrEmailAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, res.Error)
	case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusRequestTimeout, res.Error)
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, res.Error)
	}
}

func observe(action domain.AuditAction, res ports.AuthResult, start time.Time) {
	outcome := domain.OutcomeSuccess
	if !res.OK {
		outcome = domain.OutcomeFailure
	}
	metrics.AuthAttemptsTotal.WithLabelValues(string(action), outcome).Inc()
	metrics.AuthAttemptDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())
}
