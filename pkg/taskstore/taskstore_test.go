package taskstore_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbridge/taskstore/pkg/taskstore"
)

func TestNew(t *testing.T) {
	tests := map[string]struct {
		config taskstore.Config
		expErr bool
		errMsg string
	}{
		"Empty config should default to a memory store": {
			config: taskstore.Config{},
		},
		"Explicit memory kind should work": {
			config: taskstore.Config{Kind: taskstore.KindMemory},
		},
		"Unknown kind should fail with the kind in the error": {
			config: taskstore.Config{Kind: "bogus"},
			expErr: true,
			errMsg: `"bogus"`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			store, err := taskstore.New(test.config)
			if test.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, taskstore.ErrNotValid)
				assert.Contains(t, err.Error(), test.errMsg)
				return
			}
			require.NoError(t, err)

			// The returned store must be usable.
			require.NoError(t, store.CreateTask(ctx, "", "task-1", taskstore.Task{}))
			exists, err := store.TaskExists(ctx, "", "task-1")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestNewWithMetrics(t *testing.T) {
	ctx := context.Background()
	registry := prometheus.NewRegistry()

	store, err := taskstore.New(taskstore.Config{MetricsRegisterer: registry})
	require.NoError(t, err)

	require.NoError(t, store.CreateTask(ctx, "", "task-1", taskstore.Task{}))
	_, err = store.GetTask(ctx, "", "task-1")
	require.NoError(t, err)
	// A failed mutator must be measured too.
	require.Error(t, store.SetTaskOutput(ctx, "", "nope", "out"))

	families, err := registry.Gather()
	require.NoError(t, err)

	found := false
	for _, family := range families {
		if family.GetName() == "taskstore_storage_operation_duration_seconds" {
			found = true
			assert.Len(t, family.GetMetric(), 3)
		}
	}
	assert.True(t, found, "operation duration metric not registered")
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		fs        fstest.MapFS
		path      string
		expConfig taskstore.Config
		expErr    bool
	}{
		"A full settings file should map to the config": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{
					Data: []byte("kind: memory\ndefault_user_id: tenant-42\n"),
				},
			},
			path: "store.yaml",
			expConfig: taskstore.Config{
				Kind:          taskstore.KindMemory,
				DefaultUserID: "tenant-42",
			},
		},
		"An empty settings file should map to the zero config": {
			fs: fstest.MapFS{
				"store.yaml": &fstest.MapFile{Data: []byte("---\n")},
			},
			path:      "store.yaml",
			expConfig: taskstore.Config{},
		},
		"A missing settings file should fail": {
			fs:     fstest.MapFS{},
			path:   "store.yaml",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			config, err := taskstore.LoadConfig(context.Background(), test.fs, test.path)
			if test.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expConfig, config)
		})
	}
}

func TestEndToEndLifecycle(t *testing.T) {
	ctx := context.Background()

	store, err := taskstore.New(taskstore.Config{})
	require.NoError(t, err)

	taskID := taskstore.NewTaskID()
	require.NoError(t, store.CreateTask(ctx, "", taskID, taskstore.Task{
		Status:      taskstore.StatusCreated,
		Description: "export the report",
		CreatedAt:   taskstore.Timestamp(time.Now()),
	}))

	require.NoError(t, store.UpdateTaskStatus(ctx, "", taskID, taskstore.StatusRunning))
	require.NoError(t, store.AddTaskStep(ctx, "", taskID, taskstore.Step{"step": 1}))
	require.NoError(t, store.SetTaskAgent(ctx, "", taskID, t))
	require.NoError(t, store.SetTaskOutput(ctx, "", taskID, "report.csv"))
	require.NoError(t, store.MarkTaskFinished(ctx, "", taskID, ""))

	task, err := store.GetTask(ctx, "", taskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, taskstore.StatusFinished, task.Status)
	assert.Equal(t, "report.csv", task.Output)
	assert.NotEmpty(t, task.FinishedAt)

	page, err := store.ListTasks(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, taskID, page.Tasks[0].ID)

	deleted, err := store.DeleteTask(ctx, "", taskID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
