package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

// SessionPersistence mirrors the session into a key-value store under
// ports.KeyAuthToken and ports.KeyUserData, both JSON encoded.
type SessionPersistence struct {
	kv  ports.KeyValueStore
	log zerolog.Logger
}

func NewSessionPersistence(kv ports.KeyValueStore, log zerolog.Logger) *SessionPersistence {
	return &SessionPersistence{kv: kv, log: log}
}

// Load returns the persisted record. A missing, empty or unparsable key, or any
// storage error, yields absent.
func (p *SessionPersistence) Load(ctx context.Context) (*ports.PersistedSession, bool) {
	var token string
	if !p.read(ctx, ports.KeyAuthToken, &token) || token == "" {
		return nil, false
	}

	var identity *domain.Identity
	if !p.read(ctx, ports.KeyUserData, &identity) || identity == nil {
		return nil, false
	}

	return &ports.PersistedSession{Token: token, Identity: *identity}, true
}

// Save writes the token, then the identity. If either write fails both keys
// are removed, so a half-written pair never restores a stale identity.
// Failures are logged and dropped.
func (p *SessionPersistence) Save(ctx context.Context, token string, identity domain.Identity) {
	if p.write(ctx, ports.KeyAuthToken, token) && p.write(ctx, ports.KeyUserData, identity) {
		return
	}
	p.Clear(ctx)
}

// Clear removes both keys. Failures are logged and dropped.
func (p *SessionPersistence) Clear(ctx context.Context) {
	for _, key := range []string{ports.KeyAuthToken, ports.KeyUserData} {
		if err := p.kv.Delete(ctx, key); err != nil {
			p.warn(err, "delete", key)
		}
	}
}

func (p *SessionPersistence) read(ctx context.Context, key string, dst any) bool {
	raw, err := p.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			p.log.Debug().Str("key", key).Msg("persisted session key absent")
			return false
		}
		p.warn(err, "get", key)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.warn(err, "decode", key)
		return false
	}
	return true
}

func (p *SessionPersistence) write(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		p.warn(err, "encode", key)
		return false
	}
	if err := p.kv.Set(ctx, key, raw); err != nil {
		p.warn(err, "set", key)
		return false
	}
	return true
}

func (p *SessionPersistence) warn(err error, op, key string) {
	p.log.Warn().
		Err(fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)).
		Str("op", op).
		Str("key", key).
		Msg("session storage error ignored")
}
