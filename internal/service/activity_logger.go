package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"wastewise/internal/model"
	"wastewise/internal/repository"
)

// ActivityRecorder accepts activity records for persistence.
type ActivityRecorder interface {
	Record(ctx context.Context, entry model.ActivityLog)
}

const (
	defaultActivityBuffer     = 100
	defaultActivityBatchSize  = 10
	defaultActivityFlushEvery = time.Second
)

// ActivityLogger writes activity records in batches from a background worker.
// When the buffer is full the record is written synchronously.
type ActivityLogger struct {
	repo       repository.ActivityLogRepository
	entries    chan model.ActivityLog
	batchSize  int
	flushEvery time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewActivityLogger starts the batching worker. Call Close to flush on shutdown.
func NewActivityLogger(repo repository.ActivityLogRepository) *ActivityLogger {
	return newActivityLogger(repo, defaultActivityBuffer, defaultActivityBatchSize, defaultActivityFlushEvery)
}

func newActivityLogger(repo repository.ActivityLogRepository, buffer, batchSize int, flushEvery time.Duration) *ActivityLogger {
	l := &ActivityLogger{
		repo:       repo,
		entries:    make(chan model.ActivityLog, buffer),
		batchSize:  batchSize,
		flushEvery: flushEvery,
		done:       make(chan struct{}),
	}
	go l.worker(context.Background())
	return l
}

// Record queues entry without blocking the caller.
func (l *ActivityLogger) Record(ctx context.Context, entry model.ActivityLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.closed {
		select {
		case l.entries <- entry:
			return
		default:
		}
	}

	if err := l.repo.Create(context.WithoutCancel(ctx), &entry); err != nil {
		slog.Warn("activity log write failed", "action", entry.Action, "error", err)
	}
}

// Close stops the worker after flushing queued records.
func (l *ActivityLogger) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.entries)
	}
	l.mu.Unlock()
	<-l.done
}

func (l *ActivityLogger) worker(ctx context.Context) {
	defer close(l.done)

	batch := make([]model.ActivityLog, 0, l.batchSize)
	ticker := time.NewTicker(l.flushEvery)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := l.repo.CreateBatch(ctx, batch); err != nil {
			slog.Warn("activity log batch failed", "size", len(batch), "error", err)
		}
		batch = make([]model.ActivityLog, 0, l.batchSize)
	}

	for {
		select {
		case entry, ok := <-l.entries:
			if !ok {
				flush()
				return
			}
			batch = append(batch, entry)
			if len(batch) >= l.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
