package ports

import (
	"context"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// Storage keys of the persisted session record.
const (
	KeyAuthToken = "authToken"
	KeyUserData  = "userData"
)

// KeyValueStore is the durable storage surviving restarts, the console's
// equivalent of browser local storage. Get returns domain.ErrKeyNotFound for an
// absent key; Delete of an absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PersistedSession is the durable mirror of an authenticated session.
type PersistedSession struct {
	Token    string
	Identity domain.Identity
}

// SessionPersistence reads and writes the persisted session record. It never
// returns storage errors: failures are logged and degrade to absent or no-op.
type SessionPersistence interface {
	Load(ctx context.Context) (*PersistedSession, bool)
	Save(ctx context.Context, token string, identity domain.Identity)
	Clear(ctx context.Context)
}
