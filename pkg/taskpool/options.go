package taskpool

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// Hooks let you observe pool lifecycle events.
type Hooks struct {
	OnSubmit func()
	OnStart  func()
	OnFinish func()
	OnReject func(error)
}

// Options configure the pool.
type Options struct {
	// Name labels the pool in logs and metrics. Defaults to "taskpool".
	Name string
	// Workers is the number of worker goroutines. Defaults to GOMAXPROCS.
	Workers int
	// QueueSize is the queue capacity when Queue is nil. Defaults to 100.
	QueueSize int
	// Queue overrides the default TaskQueue. A queue that does not
	// implement Forcer disables the blocking admission fallback.
	Queue Queue
	// Metrics, when set, publishes Prometheus metrics for the pool.
	Metrics *Metrics
	Hooks   Hooks
	// Logger defaults to the logrus standard logger.
	Logger *logrus.Logger
}

func defaultWorkers() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}
