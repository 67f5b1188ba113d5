package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taskbridge/taskstore/internal/log"
	"github.com/taskbridge/taskstore/internal/model"
	"github.com/taskbridge/taskstore/internal/storage"
)

// DefaultPerPage is the page size used when a listing asks for none.
const DefaultPerPage = 100

// StoreConfig is the configuration for the memory store.
type StoreConfig struct {
	// DefaultUserID is the user namespace used when callers pass an empty
	// user ID (default: storage.DefaultUserID).
	DefaultUserID string
	Logger        log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.DefaultUserID == "" {
		c.DefaultUserID = storage.DefaultUserID
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Store is an in-memory implementation of storage.Store.
//
// Tasks live in a two-level map (user -> task ID -> record), agent handles in
// a parallel map so they can never leak into returned task copies. The store
// is safe for concurrent use, nothing is persisted across process restarts.
type Store struct {
	mu          sync.RWMutex
	tasks       map[string]map[string]model.Task
	agents      map[string]map[string]any
	defaultUser string
	logger      log.Logger
}

// NewStore creates a new memory store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		tasks:       map[string]map[string]model.Task{},
		agents:      map[string]map[string]any{},
		defaultUser: cfg.DefaultUserID,
		logger:      cfg.Logger,
	}, nil
}

var _ storage.Store = (*Store)(nil)

func (s *Store) user(userID string) string {
	if userID == "" {
		return s.defaultUser
	}
	return userID
}

func notFoundErr(userID, taskID string) error {
	return fmt.Errorf("task %s for user %s: %w", taskID, userID, model.ErrNotFound)
}

// CreateTask stores a task, silently overwriting any previous task with the
// same ID. Any agent handle of the replaced task is dropped.
func (s *Store) CreateTask(ctx context.Context, userID, taskID string, task model.Task) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[userID]; !ok {
		s.tasks[userID] = map[string]model.Task{}
	}
	s.tasks[userID][taskID] = task.Clone()

	// A recreated ID starts from a clean slate.
	delete(s.agents[userID], taskID)

	s.logger.Debugf("Created task %s for user %s", taskID, userID)

	return nil
}

// GetTask returns a copy of the task, or nil if it does not exist. The agent
// handle is never part of the returned record.
func (s *Store) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	userID = s.user(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return nil, nil
	}

	taskCopy := task.Clone()
	return &taskCopy, nil
}

// UpdateTask applies a partial update to an existing task.
func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, update model.TaskUpdate) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	update.Apply(&task)
	s.tasks[userID][taskID] = task

	return nil
}

// DeleteTask removes a task and its agent handle. Deleting an absent task
// returns false without error.
func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[userID][taskID]; !ok {
		return false, nil
	}

	delete(s.tasks[userID], taskID)
	delete(s.agents[userID], taskID)

	s.logger.Debugf("Deleted task %s for user %s", taskID, userID)

	return true, nil
}

// ListTasks returns one page of task summaries for a user, newest first.
func (s *Store) ListTasks(ctx context.Context, userID string, page, perPage int) (*model.TaskPage, error) {
	userID = s.user(userID)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	userTasks := s.tasks[userID]

	summaries := make([]model.TaskSummary, 0, len(userTasks))
	for taskID, task := range userTasks {
		summaries = append(summaries, summarize(taskID, task))
	}

	// Newest first, ID breaks timestamp ties so pages are stable.
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt != summaries[j].CreatedAt {
			return summaries[i].CreatedAt > summaries[j].CreatedAt
		}
		return summaries[i].ID < summaries[j].ID
	})

	total := len(summaries)
	start := (page - 1) * perPage
	end := start + perPage
	switch {
	case start >= total:
		summaries = []model.TaskSummary{}
	case end > total:
		summaries = summaries[start:total]
	default:
		summaries = summaries[start:end]
	}

	return &model.TaskPage{
		Tasks:   summaries,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func summarize(taskID string, task model.Task) model.TaskSummary {
	summary := model.TaskSummary{
		ID:          taskID,
		Status:      task.Status,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		FinishedAt:  task.FinishedAt,
		LiveURL:     task.LiveURL,
	}
	if summary.Status == "" {
		summary.Status = model.StatusUnknown
	}
	if summary.LiveURL == "" {
		summary.LiveURL = model.LiveURLFor(taskID)
	}
	return summary
}

// TaskExists returns whether a task exists.
func (s *Store) TaskExists(ctx context.Context, userID, taskID string) (bool, error) {
	userID = s.user(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tasks[userID][taskID]
	return ok, nil
}

// UpdateTaskStatus sets the status of an existing task.
func (s *Store) UpdateTaskStatus(ctx context.Context, userID, taskID string, status model.Status) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Status = status
	s.tasks[userID][taskID] = task

	return nil
}

// AddTaskStep appends a step to the task's execution history.
func (s *Store) AddTaskStep(ctx context.Context, userID, taskID string, step model.Step) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Steps = append(task.Steps, step)
	s.tasks[userID][taskID] = task

	s.logger.Debugf("Added step %v for task %s", step["step"], taskID)

	return nil
}

// AddTaskMedia appends a media descriptor to the task.
func (s *Store) AddTaskMedia(ctx context.Context, userID, taskID string, media model.Media) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Media = append(task.Media, media)
	s.tasks[userID][taskID] = task

	return nil
}

// GetTaskAgent returns the agent handle of the task, nil if the task or its
// agent does not exist.
func (s *Store) GetTaskAgent(ctx context.Context, userID, taskID string) (any, error) {
	userID = s.user(userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.tasks[userID][taskID]; !ok {
		return nil, nil
	}

	return s.agents[userID][taskID], nil
}

// SetTaskAgent associates an agent handle with an existing task.
func (s *Store) SetTaskAgent(ctx context.Context, userID, taskID string, agent any) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[userID][taskID]; !ok {
		return notFoundErr(userID, taskID)
	}

	if _, ok := s.agents[userID]; !ok {
		s.agents[userID] = map[string]any{}
	}
	s.agents[userID][taskID] = agent

	return nil
}

// SetTaskOutput sets the final output of an existing task.
func (s *Store) SetTaskOutput(ctx context.Context, userID, taskID string, output string) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Output = output
	s.tasks[userID][taskID] = task

	return nil
}

// SetTaskError sets the error message of an existing task.
func (s *Store) SetTaskError(ctx context.Context, userID, taskID string, errMsg string) error {
	userID = s.user(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Error = errMsg
	s.tasks[userID][taskID] = task

	return nil
}

// MarkTaskFinished sets the task status (finished when empty) and stamps
// finished_at with the current UTC time.
func (s *Store) MarkTaskFinished(ctx context.Context, userID, taskID string, status model.Status) error {
	userID = s.user(userID)
	if status == "" {
		status = model.StatusFinished
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[userID][taskID]
	if !ok {
		return notFoundErr(userID, taskID)
	}

	task.Status = status
	task.FinishedAt = model.Timestamp(time.Now())
	s.tasks[userID][taskID] = task

	s.logger.Debugf("Marked task %s as %s for user %s", taskID, status, userID)

	return nil
}
