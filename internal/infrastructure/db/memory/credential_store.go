// Package memory holds process-local implementations of the storage ports.
package memory

import (
	"context"
	"sync"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// CredentialStore is a read-only credential table keyed by exact email.
type CredentialStore struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Credential
}

// NewCredentialStore builds a store from creds. Later entries win on duplicate emails.
func NewCredentialStore(creds ...domain.Credential) *CredentialStore {
	s := &CredentialStore{byEmail: make(map[string]domain.Credential, len(creds))}
	for _, c := range creds {
		s.byEmail[c.Email] = c
	}
	return s
}

// NewDemoCredentialStore returns a store seeded with domain.DemoCredentials.
func NewDemoCredentialStore() *CredentialStore {
	return NewCredentialStore(domain.DemoCredentials()...)
}

func (s *CredentialStore) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &c, nil
}
