package service

import (
	"context"
	"errors"
	"sync"

	"github.com/panelkit/admin-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

type stubCredentialStore struct {
	byEmail map[string]domain.Credential
	err     error // if set, FindByEmail returns this error
}

func newStubCredentialStore() *stubCredentialStore {
	s := &stubCredentialStore{byEmail: make(map[string]domain.Credential)}
	for _, c := range []domain.Credential{
		{Identity: domain.Identity{ID: 1, Email: "admin@demo.com", Name: "Admin User", Role: domain.RoleAdmin}, Secret: "admin123"},
		{Identity: domain.Identity{ID: 2, Email: "manager@demo.com", Name: "Manager User", Role: domain.RoleManager}, Secret: "manager123"},
		{Identity: domain.Identity{ID: 3, Email: "user@demo.com", Name: "Regular User", Role: domain.RoleUser}, Secret: "user123"},
	} {
		s.byEmail[c.Email] = c
	}
	return s
}

func (s *stubCredentialStore) FindByEmail(_ context.Context, email string) (*domain.Credential, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrCredentialNotFound
	}
	return &c, nil
}

type stubKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
	setErr error
	getErr error
	// failKey makes Set fail for that key only.
	failKey string
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string][]byte)}
}

func (k *stubKV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.getErr != nil {
		return nil, k.getErr
	}
	v, ok := k.data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (k *stubKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.setErr != nil {
		return k.setErr
	}
	if k.failKey != "" && key == k.failKey {
		return errBoom
	}
	k.writes++
	k.data[key] = append([]byte(nil), value...)
	return nil
}

func (k *stubKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writes++
	delete(k.data, key)
	return nil
}

func (k *stubKV) has(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.data[key]
	return ok
}

func (k *stubKV) raw(key string) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return string(k.data[key])
}

type stubAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *stubAudit) last() domain.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return domain.AuditEntry{}
	}
	return a.entries[len(a.entries)-1]
}

var errBoom = errors.New("boom")
