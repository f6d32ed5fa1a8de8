package taskpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is a unit of work.
type Task func()

// Pool is a fixed-size worker pool over a bounded queue that keeps an
// exact count of in-flight tasks. Every submission increments the count
// before admission is attempted; the count is decremented exactly once per
// task, either when the task finishes or when admission ultimately fails.
type Pool struct {
	name    string
	queue   Queue
	hooks   Hooks
	metrics *Metrics
	log     *logrus.Entry

	// submitted counts tasks admitted (queued or handed to a worker) but
	// not yet finished. Always >= active.
	submitted atomic.Int32
	active    atomic.Int32

	workers int
	wg      sync.WaitGroup
	quit    chan struct{}
	closed  atomic.Bool
	once    sync.Once
}

// New creates a pool and starts its workers. Zero-value options get the
// defaults described on Options.
func New(opts Options) *Pool {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}
	name := opts.Name
	if name == "" {
		name = "taskpool"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	queue := opts.Queue
	if queue == nil {
		queue = NewTaskQueue(opts.QueueSize)
	}

	p := &Pool{
		name:    name,
		queue:   queue,
		hooks:   opts.Hooks,
		metrics: opts.Metrics,
		log:     logger.WithField("pool", name),
		workers: workers,
		quit:    make(chan struct{}),
	}
	if tq, ok := queue.(*TaskQueue); ok {
		tq.setPool(p)
	}

	if p.metrics != nil {
		p.metrics.SetWorkerCount(name, workers)
		p.metrics.SetQueueSize(name, 0)
		p.metrics.SetActiveWorkers(name, 0)
		p.metrics.SetInFlight(name, 0)
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	go p.monitorQueue()

	return p
}

// Execute attempts to admit the task immediately. If the queue is full it
// fails with ErrRejected without blocking.
func (p *Pool) Execute(task Task) error {
	return p.execute(context.Background(), task, 0)
}

// ExecuteTimeout attempts to admit the task, and if the queue is full
// blocks the caller for up to timeout waiting for a slot before giving up
// with ErrRejected. Cancelling ctx during the wait also fails with
// ErrRejected. The wait requires the pool's queue to implement Forcer;
// otherwise rejection propagates immediately.
func (p *Pool) ExecuteTimeout(ctx context.Context, task Task, timeout time.Duration) error {
	return p.execute(ctx, task, timeout)
}

func (p *Pool) execute(ctx context.Context, task Task, timeout time.Duration) error {
	if task == nil {
		return ErrNilTask
	}
	if p.hooks.OnSubmit != nil {
		p.hooks.OnSubmit()
	}
	if p.metrics != nil {
		p.metrics.RecordTaskSubmitted(p.name)
	}

	// Optimistic: count first, roll back on every failed exit below.
	// Incrementing before the admission attempt closes the race between a
	// capacity check and the count update.
	p.submitted.Add(1)

	if p.closed.Load() {
		return p.reject(fmt.Errorf("%w: %w", ErrRejected, ErrPoolClosed))
	}

	if p.queue.Offer(task) {
		return nil
	}

	fq, ok := p.queue.(Forcer)
	if !ok || timeout <= 0 {
		return p.reject(ErrRejected)
	}

	// Last-chance admission: wait for a slot to free up. Timeout,
	// cancellation and queue faults are all treated the same way.
	if err := fq.Force(ctx, task, timeout); err != nil {
		return p.reject(fmt.Errorf("%w: %w", ErrRejected, err))
	}
	return nil
}

// reject undoes the optimistic count increment and reports the failure.
func (p *Pool) reject(err error) error {
	p.submitted.Add(-1)
	if p.metrics != nil {
		p.metrics.RecordTaskRejected(p.name)
	}
	if p.hooks.OnReject != nil {
		p.hooks.OnReject(err)
	}
	return err
}

// SubmittedCount returns the number of tasks admitted but not yet
// finished. It is a point-in-time snapshot, never negative and always at
// least ActiveWorkers.
func (p *Pool) SubmittedCount() int {
	return int(p.submitted.Load())
}

// ActiveWorkers returns the number of workers currently running a task.
func (p *Pool) ActiveWorkers() int {
	return int(p.active.Load())
}

// Name returns the pool name used in logs and metric labels.
func (p *Pool) Name() string {
	return p.name
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case task, ok := <-p.queue.Chan():
			if !ok {
				return
			}
			p.runTask(task)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) runTask(task Task) {
	p.active.Add(1)
	if p.hooks.OnStart != nil {
		p.hooks.OnStart()
	}

	start := time.Now()
	defer func() {
		// Completion hook: the single decrement for an admitted task,
		// whether the body returned or panicked. Active drops first so
		// submitted >= active holds at every instant.
		p.active.Add(-1)
		p.submitted.Add(-1)

		if p.metrics != nil {
			p.metrics.ObserveTaskDuration(p.name, time.Since(start).Seconds())
		}
		if r := recover(); r != nil {
			if p.metrics != nil {
				p.metrics.RecordTaskFailed(p.name)
				p.metrics.RecordTaskCompleted(p.name, "failed")
			}
			p.log.WithField("panic", r).Error("task panicked")
		} else if p.metrics != nil {
			p.metrics.RecordTaskCompleted(p.name, "success")
		}
		if p.hooks.OnFinish != nil {
			p.hooks.OnFinish()
		}
	}()

	task()
}

// monitorQueue periodically publishes queue size and in-flight gauges.
func (p *Pool) monitorQueue() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if p.metrics != nil {
				p.metrics.SetQueueSize(p.name, p.queue.Len())
				p.metrics.SetActiveWorkers(p.name, p.ActiveWorkers())
				p.metrics.SetInFlight(p.name, p.SubmittedCount())
			}
		case <-p.quit:
			return
		}
	}
}

// Shutdown stops admission, waits for queued tasks to drain and for
// workers to finish. Callers blocked in ExecuteTimeout keep waiting until
// they insert or time out; their tasks are drained too.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		p.closed.Store(true)
		p.queue.Close()
		p.wg.Wait()
		close(p.quit)
		p.log.Debug("pool shut down")
	})
}

// ShutdownNow stops the pool without draining: workers exit after their
// current task and queued tasks are discarded. Callers blocked in
// ExecuteTimeout fail with ErrRejected.
func (p *Pool) ShutdownNow() {
	p.once.Do(func() {
		p.closed.Store(true)
		close(p.quit)
		p.wg.Wait()
		p.queue.Close()
		p.log.Debug("pool shut down immediately")
	})
}
