package taskpool

import "errors"

var (
	// ErrRejected is returned by Execute and ExecuteTimeout when a task
	// could not be admitted: the queue is full and either no forced
	// insertion is available or it did not free a slot in time.
	ErrRejected = errors.New("taskpool: task rejected")

	// ErrPoolClosed is returned (wrapped in ErrRejected) when a task is
	// submitted after Shutdown or ShutdownNow.
	ErrPoolClosed = errors.New("taskpool: pool closed")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("taskpool: nil task")

	// ErrQueueFull is returned by Force when no slot frees up within the
	// timeout window.
	ErrQueueFull = errors.New("taskpool: queue full")

	// ErrQueueClosed is returned by queue operations after the queue has
	// been closed, or when the owning pool shuts down mid-wait.
	ErrQueueClosed = errors.New("taskpool: queue closed")
)
