package ports

import (
	"context"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// CredentialStore is the read-only lookup table of known identities.
type CredentialStore interface {
	// FindByEmail returns domain.ErrCredentialNotFound for an unknown email.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}
