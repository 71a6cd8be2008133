package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/panelkit/admin-console/internal/core/domain"
)

func newStore(t *testing.T) (*KVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s, err := NewKVStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s, path
}

func TestKVStore_SetGetDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "authToken"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound on empty store, got %v", err)
	}
	if err := s.Set(ctx, "authToken", []byte(`"tok"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, "authToken")
	if err != nil || string(got) != `"tok"` {
		t.Fatalf("got %q, %v", got, err)
	}
	if err := s.Delete(ctx, "authToken"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "authToken"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestKVStore_SurvivesReopen(t *testing.T) {
	s, path := newStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "userData", []byte(`{"id":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewKVStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get(ctx, "userData")
	if err != nil || string(got) != `{"id":1}` {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestKVStore_CorruptDocument(t *testing.T) {
	s, path := newStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := s.Get(context.Background(), "authToken")
	if err == nil || errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestKVStore_ConcurrentWriters(t *testing.T) {
	s, path := newStore(t)
	other, err := NewKVStore(path)
	if err != nil {
		t.Fatalf("second handle: %v", err)
	}
	ctx := context.Background()

	var wg sync.WaitGroup
	for i, store := range []*KVStore{s, other} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				key := string(rune('a'+i)) + string(rune('a'+j))
				if err := store.Set(ctx, key, []byte("1")); err != nil {
					t.Errorf("set %s: %v", key, err)
				}
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		for j := 0; j < 20; j++ {
			key := string(rune('a'+i)) + string(rune('a'+j))
			if _, err := s.Get(ctx, key); err != nil {
				t.Fatalf("missing %s: %v", key, err)
			}
		}
	}
}

func TestNewKVStore_EmptyPath(t *testing.T) {
	if _, err := NewKVStore(""); err == nil {
		t.Fatalf("expected error")
	}
}
