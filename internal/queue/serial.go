package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

var ErrQueueClosed = errors.New("queue is shut down")

// Serial runs submitted jobs one at a time, in submission order, on a
// single worker goroutine. A job must not wait on its own queue.
type Serial struct {
	name   string
	jobs   chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *log.Logger
}

func NewSerial(name string, size int, logger *log.Logger) *Serial {
	if size < 0 {
		size = 0
	}

	q := &Serial{
		name:   name,
		jobs:   make(chan func(), size),
		logger: logger,
	}

	q.wg.Add(1)
	go q.worker()

	return q
}

func (q *Serial) worker() {
	defer q.wg.Done()

	q.logger.Debug("queue started", "queue", q.name)

	for job := range q.jobs {
		job()
	}

	q.logger.Debug("queue stopped", "queue", q.name)
}

// Go enqueues job without waiting for it to run.
func (q *Serial) Go(job func()) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.jobs <- job
	return nil
}

// Run enqueues job and waits for its result. If ctx ends first the job
// still runs, but its result is discarded.
func (q *Serial) Run(ctx context.Context, job func(ctx context.Context) error) error {
	done := make(chan error, 1)

	if err := q.Go(func() { done <- job(ctx) }); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for queued ones to drain.
func (q *Serial) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Debug("queue shut down cleanly", "queue", q.name)
	case <-ctx.Done():
		q.logger.Warn("queue shutdown timed out", "queue", q.name)
	}
}
