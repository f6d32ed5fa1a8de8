package taskpool

import (
	"context"
	"sync"
	"time"
)

// Queue is the holding area a Pool drains work from. Offer must never
// block; workers receive from Chan until it is closed.
type Queue interface {
	Offer(task Task) bool
	Chan() <-chan Task
	Len() int
	Cap() int
	Close()
}

// Forcer is implemented by queues that additionally support a blocking,
// timeout-bounded insertion into a full queue. A Pool whose queue does not
// implement Forcer rejects immediately when Offer fails.
type Forcer interface {
	Force(ctx context.Context, task Task, timeout time.Duration) error
}

// TaskQueue is a capacity-bounded, insertion-ordered task queue backed by
// a buffered channel. It keeps a reference to its owning pool, set when
// the pool is built, so forced insertion can observe pool shutdown.
type TaskQueue struct {
	mu     sync.RWMutex
	tasks  chan Task
	closed bool
	pool   *Pool
}

// NewTaskQueue creates a queue with the given capacity.
func NewTaskQueue(capacity int) *TaskQueue {
	if capacity <= 0 {
		capacity = 100
	}
	return &TaskQueue{tasks: make(chan Task, capacity)}
}

func (q *TaskQueue) setPool(p *Pool) {
	q.pool = p
}

// Offer attempts a non-blocking insert. It returns false when the queue is
// full or closed.
func (q *TaskQueue) Offer(task Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- task:
		return true
	default:
		return false
	}
}

// Force blocks the caller until a slot frees up and the task is inserted,
// or the timeout elapses (ErrQueueFull), or ctx is cancelled (the context
// error), or the owning pool shuts down mid-wait (ErrQueueClosed).
func (q *TaskQueue) Force(ctx context.Context, task Task, timeout time.Duration) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	// A nil channel never becomes ready, so an unowned queue simply has
	// no shutdown case in the select.
	var quit <-chan struct{}
	if q.pool != nil {
		quit = q.pool.quit
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case q.tasks <- task:
		return nil
	case <-timer.C:
		return ErrQueueFull
	case <-ctx.Done():
		return ctx.Err()
	case <-quit:
		return ErrQueueClosed
	}
}

// Chan returns the channel workers receive tasks from.
func (q *TaskQueue) Chan() <-chan Task {
	return q.tasks
}

// Len returns the number of queued tasks.
func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

// Cap returns the queue capacity.
func (q *TaskQueue) Cap() int {
	return cap(q.tasks)
}

// Close marks the queue closed and closes the task channel. It waits for
// in-progress Offer and Force calls to return first, so no insert can race
// with the channel close.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.tasks)
}
