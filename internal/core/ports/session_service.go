package ports

import (
	"context"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// AuthResult is the outcome of a login or registration attempt. Failures are
// returned as data; callers must check OK.
type AuthResult struct {
	OK    bool
	Token string
	Error string
	// Err is the underlying sentinel (domain.ErrInvalidCredentials,
	// domain.ErrEmailAlreadyExists) or a context error, for errors.Is checks.
	Err error
}

// RegisterInput carries the self-registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// SessionService is the session state machine consumed by the presentation layer.
type SessionService interface {
	Snapshot() domain.Session
	Subscribe(fn func(domain.Session)) (unsubscribe func())
	Login(ctx context.Context, email, secret string) AuthResult
	Register(ctx context.Context, in RegisterInput) AuthResult
	Logout(ctx context.Context)
	UpdateIdentity(ctx context.Context, identity domain.Identity)
	ClearError()
}
