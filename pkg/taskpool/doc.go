// Package taskpool provides a bounded worker pool that keeps an exact
// count of in-flight tasks and supports a blocking, timeout-bounded
// admission fallback when the queue is full.
//
// Execute never blocks: when the queue is full it fails with ErrRejected.
// ExecuteTimeout waits up to the given timeout for a slot to free before
// giving up. The submitted count is incremented before every admission
// attempt and decremented exactly once per task, either by the worker
// after the task finishes (normally or by panic) or on the rejection
// path, so SubmittedCount never drifts from the true number of
// outstanding tasks.
//
// Typical usage:
//
//	metrics := taskpool.NewMetrics()
//	pool := taskpool.New(taskpool.Options{
//	    Name:      "ingest",
//	    Workers:   4,
//	    QueueSize: 64,
//	    Metrics:   metrics,
//	})
//
//	err := pool.Execute(func() { process(job) })
//	if errors.Is(err, taskpool.ErrRejected) {
//	    // queue full; retry with a bounded wait
//	    err = pool.ExecuteTimeout(ctx, func() { process(job) }, time.Second)
//	}
//
//	pool.Shutdown()
//
// This package is designed for production use: it is safe for concurrent
// submission, supports observability via Prometheus, and allows graceful
// or immediate shutdown depending on which stop method is called.
package taskpool
