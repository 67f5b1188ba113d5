package model

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status represents the lifecycle state of a task.
//
// The store never validates status values. These constants are the vocabulary
// used by the bridge, callers may use their own strings.
type Status string

const (
	// StatusCreated indicates the task has been registered but not started.
	StatusCreated Status = "created"
	// StatusRunning indicates the task is being executed.
	StatusRunning Status = "running"
	// StatusPaused indicates the task execution is paused.
	StatusPaused Status = "paused"
	// StatusStopped indicates the task was stopped before completion.
	StatusStopped Status = "stopped"
	// StatusFinished indicates the task completed successfully.
	StatusFinished Status = "finished"
	// StatusFailed indicates the task ended with an error.
	StatusFailed Status = "failed"
	// StatusUnknown is the fallback used in listings when a task has no status.
	StatusUnknown Status = "unknown"
)

// Step is one entry in a task's execution history. The payload shape is
// caller-defined and passes through the store untouched.
type Step map[string]any

// Media is one entry in a task's list of produced artifacts (screenshots,
// recordings...). The payload shape is caller-defined.
type Media map[string]any

// Task is the stored state for one unit of work.
//
// Tasks are addressed by the (user, task ID) pair, IDs are unique only within
// a user namespace. The agent handle associated with a task is not part of
// the record, stores keep it out-of-band (see storage.Store).
type Task struct {
	// Status is the current lifecycle state.
	Status Status `json:"status,omitempty"`
	// Description is the free-form task description ("task" on the wire).
	Description string `json:"task,omitempty"`
	// CreatedAt is an ISO-8601 UTC timestamp string. Listings sort on it
	// lexicographically, use Timestamp to produce well-ordered values.
	CreatedAt string `json:"created_at,omitempty"`
	// FinishedAt is an ISO-8601 UTC timestamp string, empty until the task
	// is marked finished.
	FinishedAt string `json:"finished_at,omitempty"`
	// Steps is the append-only execution history.
	Steps []Step `json:"steps,omitempty"`
	// Media is the append-only list of produced artifacts.
	Media []Media `json:"media,omitempty"`
	// Output is the final result of the task.
	Output string `json:"output,omitempty"`
	// Error is the error message of a failed task.
	Error string `json:"error,omitempty"`
	// LiveURL is where the task execution can be watched. Listings default
	// it to "/live/{task_id}" when empty.
	LiveURL string `json:"live_url,omitempty"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.Steps != nil {
		out.Steps = make([]Step, len(t.Steps))
		for i, s := range t.Steps {
			out.Steps[i] = cloneMap(s)
		}
	}
	if t.Media != nil {
		out.Media = make([]Media, len(t.Media))
		for i, m := range t.Media {
			out.Media[i] = cloneMap(m)
		}
	}
	return out
}

func cloneMap[M ~map[string]any](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// TaskUpdate is a partial task record for bulk updates. Nil fields are left
// unchanged on the stored task.
type TaskUpdate struct {
	Status      *Status
	Description *string
	CreatedAt   *string
	FinishedAt  *string
	Output      *string
	Error       *string
	LiveURL     *string
	// Steps and Media replace the stored sequences wholesale when non-nil.
	// Prefer the append operations for incremental history.
	Steps []Step
	Media []Media
}

// Apply sets the non-nil update fields on the task.
func (u TaskUpdate) Apply(t *Task) {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.CreatedAt != nil {
		t.CreatedAt = *u.CreatedAt
	}
	if u.FinishedAt != nil {
		t.FinishedAt = *u.FinishedAt
	}
	if u.Output != nil {
		t.Output = *u.Output
	}
	if u.Error != nil {
		t.Error = *u.Error
	}
	if u.LiveURL != nil {
		t.LiveURL = *u.LiveURL
	}
	if u.Steps != nil {
		t.Steps = u.Steps
	}
	if u.Media != nil {
		t.Media = u.Media
	}
}

// TaskSummary is the listing view of a task.
type TaskSummary struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	Description string `json:"task"`
	CreatedAt   string `json:"created_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
	LiveURL     string `json:"live_url"`
}

// TaskPage is one page of task summaries plus the unpaginated total.
type TaskPage struct {
	Tasks   []TaskSummary `json:"tasks"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// LiveURLFor returns the default live view path for a task ID.
func LiveURLFor(taskID string) string {
	return fmt.Sprintf("/live/%s", taskID)
}

// timestampFormat renders UTC times with a literal "Z" suffix and fixed-width
// fractional seconds so lexicographic order matches chronological order.
const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Timestamp renders a time as the ISO-8601 UTC string stored in task records.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// NewTaskID returns a new unique task ID (ULID).
func NewTaskID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String()
}
