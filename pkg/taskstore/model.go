package taskstore

import (
	"time"

	"github.com/taskbridge/taskstore/internal/model"
	"github.com/taskbridge/taskstore/internal/storage"
)

// Store is the task storage contract. All implementations returned by [New]
// satisfy it, see the interface documentation for per-operation semantics.
type Store = storage.Store

// DefaultUserID is the user namespace used when none is configured.
const DefaultUserID = storage.DefaultUserID

// Task is the stored state for one unit of work.
type Task = model.Task

// TaskUpdate is a partial task record for bulk updates.
type TaskUpdate = model.TaskUpdate

// Step is one entry in a task's append-only execution history.
type Step = model.Step

// Media is one entry in a task's append-only list of produced artifacts.
type Media = model.Media

// TaskSummary is the listing view of a task.
type TaskSummary = model.TaskSummary

// TaskPage is one page of task summaries plus the unpaginated total.
type TaskPage = model.TaskPage

// Status represents the lifecycle state of a task.
type Status = model.Status

const (
	StatusCreated  = model.StatusCreated
	StatusRunning  = model.StatusRunning
	StatusPaused   = model.StatusPaused
	StatusStopped  = model.StatusStopped
	StatusFinished = model.StatusFinished
	StatusFailed   = model.StatusFailed
	StatusUnknown  = model.StatusUnknown
)

var (
	// ErrNotFound is returned by mutating operations on tasks that do not exist.
	ErrNotFound = model.ErrNotFound
	// ErrNotValid is returned on invalid arguments, e.g. an unknown storage kind.
	ErrNotValid = model.ErrNotValid
)

// NewTaskID returns a new unique task ID (ULID).
func NewTaskID() string { return model.NewTaskID() }

// Timestamp renders a time as the ISO-8601 UTC string stored in task records.
// Timestamps produced by it sort lexicographically in chronological order.
func Timestamp(t time.Time) string { return model.Timestamp(t) }

// LiveURLFor returns the default live view path for a task ID.
func LiveURLFor(taskID string) string { return model.LiveURLFor(taskID) }
