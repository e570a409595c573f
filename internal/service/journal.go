package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"foodcart/internal/model"
	"foodcart/internal/repository"
)

// CheckoutJournal records checkout attempt outcomes.
type CheckoutJournal interface {
	Record(ctx context.Context, entry model.CheckoutLog)
}

// NopJournal discards entries; used when no database is configured.
type NopJournal struct{}

// Record does nothing.
func (NopJournal) Record(context.Context, model.CheckoutLog) {}

// AsyncJournal batches entries to the checkout log repository from a background worker.
type AsyncJournal struct {
	repo     repository.CheckoutLogRepository
	log      zerolog.Logger
	entries  chan model.CheckoutLog
	interval time.Duration
	done     chan struct{}
	once     sync.Once

	mu     sync.RWMutex
	closed bool
}

const journalBatchSize = 10

// NewAsyncJournal starts the journal worker. Close flushes and stops it.
func NewAsyncJournal(repo repository.CheckoutLogRepository, log zerolog.Logger) *AsyncJournal {
	j := &AsyncJournal{
		repo:     repo,
		log:      log.With().Str("component", "checkout_journal").Logger(),
		entries:  make(chan model.CheckoutLog, 100),
		interval: time.Second,
		done:     make(chan struct{}),
	}
	go j.worker()
	return j
}

// Record queues an entry. It writes synchronously when the queue is full or
// the journal is closed.
func (j *AsyncJournal) Record(ctx context.Context, entry model.CheckoutLog) {
	j.mu.RLock()
	queued := false
	if !j.closed {
		select {
		case j.entries <- entry:
			queued = true
		default:
		}
	}
	j.mu.RUnlock()

	if queued {
		return
	}
	if err := j.repo.Create(context.WithoutCancel(ctx), &entry); err != nil {
		j.log.Warn().Err(err).Msg("write checkout log")
	}
}

// Close flushes queued entries and stops the worker. Entries recorded after
// Close are written directly.
func (j *AsyncJournal) Close() {
	j.once.Do(func() {
		j.mu.Lock()
		j.closed = true
		close(j.entries)
		j.mu.Unlock()
		<-j.done
	})
}

func (j *AsyncJournal) worker() {
	defer close(j.done)

	ctx := context.Background()
	batch := make([]model.CheckoutLog, 0, journalBatchSize)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := j.repo.CreateBatch(ctx, batch); err != nil {
			j.log.Warn().Err(err).Int("entries", len(batch)).Msg("write checkout log batch")
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry, ok := <-j.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= journalBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
