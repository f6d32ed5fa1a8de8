package taskpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for task pools. One Metrics value
// can be shared by several pools; series are labelled by pool name.
type Metrics struct {
	TasksSubmitted *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TasksRejected  *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
	QueueSize      *prometheus.GaugeVec
	ActiveWorkers  *prometheus.GaugeVec
	WorkerCount    *prometheus.GaugeVec
	InFlight       *prometheus.GaugeVec
}

// NewMetrics creates and registers all task pool metrics with the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		TasksSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskpool_tasks_submitted_total",
				Help: "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),
		TasksCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskpool_tasks_completed_total",
				Help: "Total number of tasks that finished running",
			},
			[]string{"pool_name", "status"},
		),
		TasksFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskpool_tasks_failed_total",
				Help: "Total number of tasks that panicked",
			},
			[]string{"pool_name"},
		),
		TasksRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taskpool_tasks_rejected_total",
				Help: "Total number of tasks rejected (queue full)",
			},
			[]string{"pool_name"},
		),
		TaskDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taskpool_task_duration_seconds",
				Help:    "Duration of task execution in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),
		QueueSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskpool_queue_size",
				Help: "Current number of tasks in the queue",
			},
			[]string{"pool_name"},
		),
		ActiveWorkers: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskpool_active_workers",
				Help: "Current number of workers running a task",
			},
			[]string{"pool_name"},
		),
		WorkerCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskpool_worker_count",
				Help: "Total number of workers in the pool",
			},
			[]string{"pool_name"},
		),
		InFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "taskpool_tasks_in_flight",
				Help: "Tasks admitted but not yet finished",
			},
			[]string{"pool_name"},
		),
	}
}

// RecordTaskSubmitted increments the submitted tasks counter
func (m *Metrics) RecordTaskSubmitted(poolName string) {
	m.TasksSubmitted.WithLabelValues(poolName).Inc()
}

// RecordTaskCompleted increments the completed tasks counter
func (m *Metrics) RecordTaskCompleted(poolName string, status string) {
	m.TasksCompleted.WithLabelValues(poolName, status).Inc()
}

// RecordTaskFailed increments the failed tasks counter
func (m *Metrics) RecordTaskFailed(poolName string) {
	m.TasksFailed.WithLabelValues(poolName).Inc()
}

// RecordTaskRejected increments the rejected tasks counter
func (m *Metrics) RecordTaskRejected(poolName string) {
	m.TasksRejected.WithLabelValues(poolName).Inc()
}

// ObserveTaskDuration records task execution duration
func (m *Metrics) ObserveTaskDuration(poolName string, duration float64) {
	m.TaskDuration.WithLabelValues(poolName).Observe(duration)
}

// SetQueueSize sets the current queue size
func (m *Metrics) SetQueueSize(poolName string, size int) {
	m.QueueSize.WithLabelValues(poolName).Set(float64(size))
}

// SetActiveWorkers sets the current number of active workers
func (m *Metrics) SetActiveWorkers(poolName string, count int) {
	m.ActiveWorkers.WithLabelValues(poolName).Set(float64(count))
}

// SetWorkerCount sets the total number of workers
func (m *Metrics) SetWorkerCount(poolName string, count int) {
	m.WorkerCount.WithLabelValues(poolName).Set(float64(count))
}

// SetInFlight sets the current number of in-flight tasks
func (m *Metrics) SetInFlight(poolName string, count int) {
	m.InFlight.WithLabelValues(poolName).Set(float64(count))
}
