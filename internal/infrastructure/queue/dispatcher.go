// Package queue delivers auth audit entries to a repository off the request path.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/api/metrics"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit entries to a fixed set of workers using consistent
// hashing on the email, so entries for one account are stored in order.
// It implements ports.AuditSink.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup

	// mu guards stopped. Record sends under the read lock, so once stopped
	// is set no entry can land in a channel the workers no longer read.
	mu      sync.RWMutex
	stopped bool
	quit    chan struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
		quit:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Once ctx is cancelled workers drain
// what is already queued and stop; Wait blocks until they have. Entries
// recorded after that are stored synchronously.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		<-ctx.Done()
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()
		close(d.quit)
	}()
}

// Wait blocks until every worker started by Start has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record queues entry on the worker responsible for its email. It never
// blocks on a running dispatcher: when that worker's buffer is full the entry
// is dropped and logged. After shutdown the entry is stored inline.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	idx := d.shardIndex(entry.Email)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		d.insert(context.Background(), idx, entry)
		return
	}
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.AuditErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().
			Str("action", string(entry.Action)).
			Str("email", entry.Email).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-d.quit:
			d.drain(id, label, ch)
			return
		case entry := <-ch:
			d.store(ctx, id, label, entry)
		}
	}
}

// drain flushes whatever is buffered at shutdown with a context that is no
// longer cancelled.
func (d *Dispatcher) drain(id int, label string, ch <-chan domain.AuditEntry) {
	ctx := context.Background()
	for {
		select {
		case entry := <-ch:
			d.store(ctx, id, label, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) store(ctx context.Context, id int, label string, entry domain.AuditEntry) {
	metrics.AuditQueueDepth.WithLabelValues(label).Dec()
	d.insert(ctx, id, entry)
}

func (d *Dispatcher) insert(ctx context.Context, id int, entry domain.AuditEntry) {
	if err := d.repo.Insert(ctx, entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		d.log.Error().Err(err).
			Str("action", string(entry.Action)).
			Str("email", entry.Email).
			Int("worker_id", id).
			Msg("audit entry not stored")
	}
}
