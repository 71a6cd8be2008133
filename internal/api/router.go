package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/panelkit/admin-console/docs"
	"github.com/panelkit/admin-console/internal/api/handler"
	"github.com/panelkit/admin-console/internal/api/middleware"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
	"github.com/panelkit/admin-console/internal/core/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Sessions  ports.SessionService
	Directory ports.DirectoryService
	Authz     *service.Authorizer
	Guard     *service.RouteGuard
	// Pingers are checked by /health/ready, keyed by dependency name.
	Pingers map[string]handler.Pinger
	Logger  zerolog.Logger
	// Registerer and Gatherer back the request metrics and /metrics.
	// Nil means the default Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "console",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Authz)
	requireSession := middleware.RequireSession(deps.Sessions)

	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)
	e.PUT("/auth/profile", authHandler.UpdateProfile, requireSession)
	e.DELETE("/auth/error", authHandler.ClearError)
	e.GET("/auth/menu", authHandler.Menu)
	e.GET(domain.PathLogin, authHandler.LoginView)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, domain.PathDashboard)
	})

	// --- Guarded console views ---
	dash := handler.NewDashboardHandler(deps.Directory)
	staff := []domain.Role{domain.RoleAdmin, domain.RoleManager}
	view := func(path string, roles []domain.Role) echo.MiddlewareFunc {
		return middleware.Guard(middleware.GuardConfig{
			Sessions: deps.Sessions,
			Guard:    deps.Guard,
			Route:    service.RouteRequest{Path: path, RequiredRoles: roles},
			Logger:   deps.Logger,
		})
	}

	e.GET(domain.PathDashboard, dash.Overview, view(domain.PathDashboard, nil))
	e.GET(domain.PathUsers, dash.Users, view(domain.PathUsers, staff))
	e.DELETE(domain.PathUsers+"/:id", dash.DeleteUser, view(domain.PathUsers, staff))
	e.GET(domain.PathProducts, dash.Products, view(domain.PathProducts, nil))
	e.DELETE(domain.PathProducts+"/:id", dash.DeleteProduct, view(domain.PathProducts, nil))
	e.GET(domain.PathAddProd, dash.AddProductView, view(domain.PathAddProd, nil))
	e.GET(domain.PathAnalytics, dash.Analytics, view(domain.PathAnalytics, staff))
	e.GET(domain.PathSettings, dash.Settings, view(domain.PathSettings, nil))

	// --- Health probes and ops ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
