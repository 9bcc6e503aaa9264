package events

import (
	"context"
	"log/slog"
	"sync"
)

type WorkerPool[T any] struct {
	jobs    chan T
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler func(ctx context.Context, job T) error

	mu     sync.RWMutex
	closed bool
}

func NewWorkerPool[T any](ctx context.Context, maxWorkers, queueSize int, handler func(ctx context.Context, job T) error) *WorkerPool[T] {
	if maxWorkers < 1 {
		maxWorkers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool[T]{
		jobs:    make(chan T, queueSize),
		ctx:     poolCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (w *WorkerPool[T]) worker() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.jobs:
			if !ok {
				return
			}
			if err := w.handler(w.ctx, job); err != nil {
				slog.Error("failed to handle job", "error", err)
			}
		}
	}
}

// Submit queues a job, blocking while the queue is full (backpressure).
// Returns false if either context is cancelled or the pool is closed.
func (w *WorkerPool[T]) Submit(ctx context.Context, job T) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return false
	}

	select {
	case w.jobs <- job:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// TrySubmit queues a job only if there is room right now.
func (w *WorkerPool[T]) TrySubmit(job T) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return false
	}

	select {
	case w.jobs <- job:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits until the queued ones are handled.
func (w *WorkerPool[T]) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()

	w.wg.Wait()
	w.cancel()
}
