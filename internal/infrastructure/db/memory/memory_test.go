package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/panelkit/admin-console/internal/core/domain"
)

func TestCredentialStore_FindByEmail(t *testing.T) {
	s := NewDemoCredentialStore()

	c, err := s.FindByEmail(context.Background(), "manager@demo.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if c.Role != domain.RoleManager || !c.Verify("manager123") {
		t.Fatalf("unexpected credential %+v", c.Identity)
	}

	if _, err := s.FindByEmail(context.Background(), "Manager@demo.com"); !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected exact-match lookup, got %v", err)
	}
}

func TestKVStore(t *testing.T) {
	s := NewKVStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	in := []byte("v1")
	if err := s.Set(ctx, "k", in); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = 'x'

	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("got %q, %v", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete of missing key should succeed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}
