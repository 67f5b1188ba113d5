// Package metrics provides a storage.Store decorator that records Prometheus
// metrics for every storage operation.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taskbridge/taskstore/internal/model"
	"github.com/taskbridge/taskstore/internal/storage"
)

// StoreConfig is the configuration for the measured store.
type StoreConfig struct {
	// Next is the store being measured.
	Next storage.Store
	// Registerer is where the metrics are registered
	// (default: prometheus.DefaultRegisterer).
	Registerer prometheus.Registerer
	// Namespace is the metrics namespace (default: "taskstore").
	Namespace string
}

func (c *StoreConfig) defaults() error {
	if c.Next == nil {
		return fmt.Errorf("next store is required")
	}
	if c.Registerer == nil {
		c.Registerer = prometheus.DefaultRegisterer
	}
	if c.Namespace == "" {
		c.Namespace = "taskstore"
	}
	return nil
}

// Store wraps another storage.Store and measures operation counts and
// latencies per operation and outcome.
type Store struct {
	next       storage.Store
	opDuration *prometheus.HistogramVec
}

// NewStore creates a new measured store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		next: cfg.Next,
		opDuration: promauto.With(cfg.Registerer).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Task storage operation latency by operation and success.",
			Buckets:   []float64{.000005, .00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005},
		}, []string{"operation", "success"}),
	}, nil
}

var _ storage.Store = (*Store)(nil)

func (s *Store) observe(operation string, start time.Time, err error) {
	s.opDuration.WithLabelValues(operation, strconv.FormatBool(err == nil)).
		Observe(time.Since(start).Seconds())
}

func (s *Store) CreateTask(ctx context.Context, userID, taskID string, task model.Task) (err error) {
	defer func(start time.Time) { s.observe("create_task", start, err) }(time.Now())
	return s.next.CreateTask(ctx, userID, taskID, task)
}

func (s *Store) GetTask(ctx context.Context, userID, taskID string) (task *model.Task, err error) {
	defer func(start time.Time) { s.observe("get_task", start, err) }(time.Now())
	return s.next.GetTask(ctx, userID, taskID)
}

func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, update model.TaskUpdate) (err error) {
	defer func(start time.Time) { s.observe("update_task", start, err) }(time.Now())
	return s.next.UpdateTask(ctx, userID, taskID, update)
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) (deleted bool, err error) {
	defer func(start time.Time) { s.observe("delete_task", start, err) }(time.Now())
	return s.next.DeleteTask(ctx, userID, taskID)
}

func (s *Store) ListTasks(ctx context.Context, userID string, page, perPage int) (p *model.TaskPage, err error) {
	defer func(start time.Time) { s.observe("list_tasks", start, err) }(time.Now())
	return s.next.ListTasks(ctx, userID, page, perPage)
}

func (s *Store) TaskExists(ctx context.Context, userID, taskID string) (ok bool, err error) {
	defer func(start time.Time) { s.observe("task_exists", start, err) }(time.Now())
	return s.next.TaskExists(ctx, userID, taskID)
}

func (s *Store) UpdateTaskStatus(ctx context.Context, userID, taskID string, status model.Status) (err error) {
	defer func(start time.Time) { s.observe("update_task_status", start, err) }(time.Now())
	return s.next.UpdateTaskStatus(ctx, userID, taskID, status)
}

func (s *Store) AddTaskStep(ctx context.Context, userID, taskID string, step model.Step) (err error) {
	defer func(start time.Time) { s.observe("add_task_step", start, err) }(time.Now())
	return s.next.AddTaskStep(ctx, userID, taskID, step)
}

func (s *Store) AddTaskMedia(ctx context.Context, userID, taskID string, media model.Media) (err error) {
	defer func(start time.Time) { s.observe("add_task_media", start, err) }(time.Now())
	return s.next.AddTaskMedia(ctx, userID, taskID, media)
}

func (s *Store) GetTaskAgent(ctx context.Context, userID, taskID string) (agent any, err error) {
	defer func(start time.Time) { s.observe("get_task_agent", start, err) }(time.Now())
	return s.next.GetTaskAgent(ctx, userID, taskID)
}

func (s *Store) SetTaskAgent(ctx context.Context, userID, taskID string, agent any) (err error) {
	defer func(start time.Time) { s.observe("set_task_agent", start, err) }(time.Now())
	return s.next.SetTaskAgent(ctx, userID, taskID, agent)
}

func (s *Store) SetTaskOutput(ctx context.Context, userID, taskID string, output string) (err error) {
	defer func(start time.Time) { s.observe("set_task_output", start, err) }(time.Now())
	return s.next.SetTaskOutput(ctx, userID, taskID, output)
}

func (s *Store) SetTaskError(ctx context.Context, userID, taskID string, errMsg string) (err error) {
	defer func(start time.Time) { s.observe("set_task_error", start, err) }(time.Now())
	return s.next.SetTaskError(ctx, userID, taskID, errMsg)
}

func (s *Store) MarkTaskFinished(ctx context.Context, userID, taskID string, status model.Status) (err error) {
	defer func(start time.Time) { s.observe("mark_task_finished", start, err) }(time.Now())
	return s.next.MarkTaskFinished(ctx, userID, taskID, status)
}
