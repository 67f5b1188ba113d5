package storage

import (
	"context"

	"github.com/taskbridge/taskstore/internal/model"
)

// DefaultUserID is the user namespace used by stores when none is configured.
const DefaultUserID = "default"

// Store is the interface for task persistence.
//
// Tasks live in per-user namespaces. Every operation takes a userID, an empty
// userID resolves to the store's configured default user, so single-tenant
// callers can always pass "".
//
// Read operations are total: they never fail on missing data, they return an
// absence marker (nil task, nil agent) or an empty page instead. Mutating
// operations on a task that does not exist fail with an error matching
// [model.ErrNotFound], they never create the task implicitly.
type Store interface {
	// CreateTask stores a task under (userID, taskID). An existing task with
	// the same ID is silently overwritten (and its agent handle dropped).
	CreateTask(ctx context.Context, userID, taskID string, task model.Task) error

	// GetTask returns a copy of the task, or nil if it does not exist.
	GetTask(ctx context.Context, userID, taskID string) (*model.Task, error)

	// UpdateTask applies a partial update to an existing task.
	UpdateTask(ctx context.Context, userID, taskID string, update model.TaskUpdate) error

	// DeleteTask removes a task and its agent handle. It returns whether a
	// task was actually removed, deleting an absent task is not an error.
	DeleteTask(ctx context.Context, userID, taskID string) (bool, error)

	// ListTasks returns one page of task summaries for a user, newest first
	// by creation timestamp, plus the unpaginated per-user total. A page past
	// the end yields an empty page, an unknown user yields an empty page
	// with total 0.
	ListTasks(ctx context.Context, userID string, page, perPage int) (*model.TaskPage, error)

	// TaskExists returns whether a task exists.
	TaskExists(ctx context.Context, userID, taskID string) (bool, error)

	// UpdateTaskStatus sets the status of an existing task.
	UpdateTaskStatus(ctx context.Context, userID, taskID string, status model.Status) error

	// AddTaskStep appends a step to the task's execution history.
	AddTaskStep(ctx context.Context, userID, taskID string, step model.Step) error

	// AddTaskMedia appends a media descriptor to the task.
	AddTaskMedia(ctx context.Context, userID, taskID string, media model.Media) error

	// GetTaskAgent returns the agent handle associated with the task, or nil
	// if the task or its agent does not exist.
	GetTaskAgent(ctx context.Context, userID, taskID string) (any, error)

	// SetTaskAgent associates an opaque agent handle with an existing task.
	// The handle is held out-of-band and is never part of GetTask results.
	SetTaskAgent(ctx context.Context, userID, taskID string, agent any) error

	// SetTaskOutput sets the final output of an existing task.
	SetTaskOutput(ctx context.Context, userID, taskID string, output string) error

	// SetTaskError sets the error message of an existing task.
	SetTaskError(ctx context.Context, userID, taskID string, errMsg string) error

	// MarkTaskFinished sets the task status (defaulting to finished when
	// empty) and stamps finished_at with the current UTC time.
	MarkTaskFinished(ctx context.Context, userID, taskID string, status model.Status) error
}
