package ports

import "github.com/panelkit/admin-console/internal/core/domain"

// TokenIssuer synthesises the opaque session token handed out on login and
// registration. Tokens must be unique per issue over the process lifetime.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
