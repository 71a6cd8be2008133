package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Storage.Driver != StorageMemory || cfg.Credentials.Driver != CredentialsMemory {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Auth.Latency != time.Second || cfg.Auth.TokenMode != TokenOpaque || cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected auth defaults %+v", cfg.Auth)
	}
	if cfg.Redis.Prefix != "console:" || cfg.Audit.Workers != 4 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_DRIVER": "sqlite",
		"STORAGE_SQLITE": "/tmp/x.db",
		"AUTH_LATENCY":   "0s",
		"TOKEN_MODE":     "signed",
		"TOKEN_SECRET":   "s3cret",
		"REDIS_DB":       "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != StorageSQLite || cfg.Storage.SQLitePath != "/tmp/x.db" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Auth.Latency != 0 || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"storage driver":     {"STORAGE_DRIVER": "etcd"},
		"credentials driver": {"CREDENTIALS_DRIVER": "ldap"},
		"token mode":         {"TOKEN_MODE": "paseto"},
		"signed w/o secret":  {"TOKEN_MODE": "signed"},
		"negative latency":   {"AUTH_LATENCY": "-1s"},
		"bad duration":       {"AUTH_LATENCY": "soon"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
