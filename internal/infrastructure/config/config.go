package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers for the session key-value store.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Credential store drivers.
const (
	CredentialsMemory = "memory"
	CredentialsMongo  = "mongo"
)

// Token modes.
const (
	TokenOpaque = "opaque"
	TokenSigned = "signed"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth        AuthConfig
	Storage     StorageConfig
	Credentials CredentialsConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	Audit       AuditConfig
}

type AuthConfig struct {
	Latency     time.Duration `env:"AUTH_LATENCY, default=1s"`
	TokenMode   string        `env:"TOKEN_MODE,   default=opaque"`
	TokenSecret string        `env:"TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
}

type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER, default=memory"`
	File       string `env:"STORAGE_FILE,   default=console-session.json"`
	SQLitePath string `env:"STORAGE_SQLITE, default=console-session.db"`
}

type CredentialsConfig struct {
	Driver string `env:"CREDENTIALS_DRIVER, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=admin_console"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=console:"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageFile, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	switch c.Credentials.Driver {
	case CredentialsMemory, CredentialsMongo:
	default:
		return fmt.Errorf("unknown CREDENTIALS_DRIVER %q", c.Credentials.Driver)
	}
	switch c.Auth.TokenMode {
	case TokenOpaque:
	case TokenSigned:
		if c.Auth.TokenSecret == "" {
			return fmt.Errorf("TOKEN_SECRET is required when TOKEN_MODE=%s", TokenSigned)
		}
	default:
		return fmt.Errorf("unknown TOKEN_MODE %q", c.Auth.TokenMode)
	}
	if c.Auth.Latency < 0 {
		return fmt.Errorf("AUTH_LATENCY must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
