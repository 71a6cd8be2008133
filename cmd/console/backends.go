package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/api/handler"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
	"github.com/panelkit/admin-console/internal/core/service"
	"github.com/panelkit/admin-console/internal/infrastructure/config"
	"github.com/panelkit/admin-console/internal/infrastructure/db/file"
	"github.com/panelkit/admin-console/internal/infrastructure/db/memory"
	"github.com/panelkit/admin-console/internal/infrastructure/db/mongo"
	"github.com/panelkit/admin-console/internal/infrastructure/db/redis"
	"github.com/panelkit/admin-console/internal/infrastructure/db/sqlite"
	"github.com/panelkit/admin-console/internal/infrastructure/queue"
)

// backends are the storage adapters selected by configuration.
type backends struct {
	kv          ports.KeyValueStore
	credentials ports.CredentialStore
	audit       ports.AuditRepository
	pingers     map[string]handler.Pinger
	closers     []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{pingers: make(map[string]handler.Pinger)}

	if err := b.openSessionStore(ctx, cfg, log); err != nil {
		b.close()
		return nil, err
	}
	if err := b.openCredentials(ctx, cfg, log); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

func (b *backends) openSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	switch cfg.Storage.Driver {
	case config.StorageFile:
		kv, err := file.NewKVStore(cfg.Storage.File)
		if err != nil {
			return err
		}
		b.kv = kv
	case config.StorageRedis:
		kv, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Prefix: cfg.Redis.Prefix})
		if err != nil {
			return err
		}
		b.kv = kv
		b.pingers["redis"] = kv
		b.closers = append(b.closers, func() { _ = kv.Close() })
	case config.StorageSQLite:
		kv, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		b.kv = kv
		b.pingers["sqlite"] = kv
		b.closers = append(b.closers, func() { _ = kv.Close() })
	default:
		b.kv = memory.NewKVStore()
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("session store ready")
	return nil
}

func (b *backends) openCredentials(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Credentials.Driver != config.CredentialsMongo {
		b.credentials = memory.NewDemoCredentialStore()
		b.audit = queue.NewLogRepository(log.With().Str("component", "audit").Logger())
		return nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
	b.pingers["mongodb"] = handler.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})

	creds := mongo.NewCredentialStore(db)
	n, err := creds.Seed(ctx, domain.DemoCredentials()...)
	if err != nil {
		return fmt.Errorf("seed credentials: %w", err)
	}
	log.Info().Int("inserted", n).Msg("demo credentials seeded")

	b.credentials = creds
	b.audit = mongo.NewAuditRepository(db)
	return nil
}

func newTokenIssuer(cfg config.AuthConfig) (ports.TokenIssuer, error) {
	if cfg.TokenMode == config.TokenSigned {
		return service.NewSignedTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)
	}
	return service.NewOpaqueTokenIssuer(), nil
}
