// Command console serves the role-based admin console.
//
// @title        Admin Console API
// @version      1.0
// @description  Role-based admin console: session lifecycle, navigation menus and guarded views.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/panelkit/admin-console/internal/api"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/service"
	"github.com/panelkit/admin-console/internal/infrastructure/config"
	"github.com/panelkit/admin-console/internal/infrastructure/queue"
	"github.com/panelkit/admin-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "console: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "admin-console",
		Env:     cfg.Env,
	})

	backends, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backends.close()

	tokens, err := newTokenIssuer(cfg.Auth)
	if err != nil {
		return err
	}

	audit := queue.NewDispatcher(cfg.Audit.Workers, backends.audit, logger.Component("audit"))

	sessions := service.NewSessionService(
		backends.credentials,
		service.NewSessionPersistence(backends.kv, logger.Component("persistence")),
		tokens,
		audit,
		cfg.Auth.Latency,
		logger.Component("session"),
	)
	unsubscribe := sessions.Subscribe(func(s domain.Session) {
		log.Debug().
			Str("status", string(s.Status)).
			Str("role", s.Role().String()).
			Msg("session changed")
	})
	defer unsubscribe()

	authz := service.NewAuthorizer()
	e := api.NewRouter(api.Deps{
		Sessions:  sessions,
		Directory: service.NewDirectoryService(logger.Component("directory")),
		Authz:     authz,
		Guard:     service.NewRouteGuard(authz),
		Pingers:   backends.pingers,
		Logger:    logger.Component("http"),
	})

	// The audit workers outlive the HTTP server so requests finishing during
	// shutdown still have their entries stored.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	audit.Start(auditCtx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sessions.Initialize(gctx)
		log.Info().Str("port", cfg.Port).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		stopAudit()
		audit.Wait()
		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
