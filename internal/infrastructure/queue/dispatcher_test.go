package queue

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (r *recordingRepo) Insert(_ context.Context, e domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return r.err
}

func (r *recordingRepo) snapshot() []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEntry(nil), r.entries...)
}

func TestDispatcher_PreservesPerEmailOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	actions := []domain.AuditAction{domain.AuditLogin, domain.AuditUpdate, domain.AuditLogout}
	for _, email := range []string{"admin@demo.com", "user@demo.com"} {
		for _, a := range actions {
			d.Record(domain.AuditEntry{Action: a, Email: email})
		}
	}

	cancel()
	d.Wait()

	got := repo.snapshot()
	if len(got) != 6 {
		t.Fatalf("expected 6 stored entries, got %d", len(got))
	}
	perEmail := map[string][]domain.AuditAction{}
	for _, e := range got {
		perEmail[e.Email] = append(perEmail[e.Email], e.Action)
	}
	for email, seq := range perEmail {
		for i, a := range actions {
			if seq[i] != a {
				t.Fatalf("%s: out of order %v", email, seq)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	a := d.shardIndex("manager@demo.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("manager@demo.com") != a {
			t.Fatalf("shard index changed")
		}
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuditEntry{Action: domain.AuditLogin, Email: "x@demo.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked with no worker running")
	}
}

func TestDispatcher_InsertErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := &recordingRepo{err: errors.New("boom")}
	d := NewDispatcher(1, repo, zerolog.New(&buf))
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuditEntry{Action: domain.AuditLogin, Email: "x@demo.com"})
	cancel()
	d.Wait()

	if !strings.Contains(buf.String(), "audit entry not stored") {
		t.Fatalf("expected error log, got %q", buf.String())
	}
}

func TestLogRepository_Insert(t *testing.T) {
	var buf bytes.Buffer
	repo := NewLogRepository(zerolog.New(&buf))

	err := repo.Insert(context.Background(), domain.AuditEntry{
		Action:  domain.AuditLogin,
		Email:   "user@demo.com",
		Outcome: domain.OutcomeFailure,
		Reason:  "invalid email or password",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"email":"user@demo.com"`) {
		t.Fatalf("unexpected log line %q", out)
	}
}

func TestDispatcher_RecordAfterStopIsStored(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	d.Wait()

	d.Record(domain.AuditEntry{Action: domain.AuditLogin, Email: "user@demo.com", Outcome: domain.OutcomeSuccess})

	got := repo.snapshot()
	if len(got) != 1 || got[0].Email != "user@demo.com" {
		t.Fatalf("expected entry stored after shutdown, got %+v", got)
	}
	for i, ch := range d.workers {
		if len(ch) != 0 {
			t.Fatalf("worker %d still holds %d entries", i, len(ch))
		}
	}
}
