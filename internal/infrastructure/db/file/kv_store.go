// Package file implements ports.KeyValueStore on a single JSON document,
// guarded by an advisory lock so several console processes can share it.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/panelkit/admin-console/internal/core/domain"
)

const lockRetry = 20 * time.Millisecond

// KVStore keeps every key in one JSON object on disk. Each operation takes the
// lock, reads the whole document and, for writes, replaces it atomically.
// The file lock is held per handle, so mu serialises goroutines sharing one.
type KVStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewKVStore prepares a store at path. The parent directory is created if
// needed; the document itself is created on first write.
func NewKVStore(path string) (*KVStore, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &KVStore{path: path, lock: flock.New(path + ".lock")}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer s.release()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	v, ok := doc[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.update(ctx, func(doc map[string]string) bool {
		doc[key] = string(value)
		return true
	})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.update(ctx, func(doc map[string]string) bool {
		if _, ok := doc[key]; !ok {
			return false
		}
		delete(doc, key)
		return true
	})
}

func (s *KVStore) update(ctx context.Context, mutate func(map[string]string) bool) error {
	if err := s.acquire(ctx, true); err != nil {
		return err
	}
	defer s.release()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if !mutate(doc) {
		return nil
	}
	return s.write(doc)
}

func (s *KVStore) acquire(ctx context.Context, exclusive bool) error {
	s.mu.Lock()
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = s.lock.TryLockContext(ctx, lockRetry)
	} else {
		ok, err = s.lock.TryRLockContext(ctx, lockRetry)
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("file store lock: %w", err)
	}
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("file store lock: %w", ctx.Err())
	}
	return nil
}

func (s *KVStore) release() {
	_ = s.lock.Unlock()
	s.mu.Unlock()
}

func (s *KVStore) read() (map[string]string, error) {
	doc := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file store read: %w", err)
	}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file store decode %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *KVStore) write(doc map[string]string) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("file store encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store write: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store write: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("file store write: %w", err)
	}
	return nil
}
