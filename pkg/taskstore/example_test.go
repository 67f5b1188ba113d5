package taskstore_test

import (
	"context"
	"fmt"

	"github.com/taskbridge/taskstore/pkg/taskstore"
)

// This example shows the full task lifecycle: create, run, record history,
// finish and list.
func Example_lifecycle() {
	ctx := context.Background()

	store, err := taskstore.New(taskstore.Config{})
	if err != nil {
		panic(err)
	}

	err = store.CreateTask(ctx, "", "task-1", taskstore.Task{
		Status:      taskstore.StatusCreated,
		Description: "export the monthly report",
		CreatedAt:   "2025-06-01T10:30:00.000000Z",
	})
	if err != nil {
		panic(err)
	}

	_ = store.UpdateTaskStatus(ctx, "", "task-1", taskstore.StatusRunning)
	_ = store.AddTaskStep(ctx, "", "task-1", taskstore.Step{"step": 1, "url": "https://example.com"})
	_ = store.SetTaskOutput(ctx, "", "task-1", "report.csv")
	_ = store.MarkTaskFinished(ctx, "", "task-1", "")

	task, err := store.GetTask(ctx, "", "task-1")
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s: %s (%d steps, output %s)\n", "task-1", task.Status, len(task.Steps), task.Output)

	// Output:
	// task-1: finished (1 steps, output report.csv)
}

// This example shows how tasks are partitioned per user.
func Example_users() {
	ctx := context.Background()

	store, err := taskstore.New(taskstore.Config{})
	if err != nil {
		panic(err)
	}

	// The same task ID under two users does not collide.
	_ = store.CreateTask(ctx, "user-a", "task-1", taskstore.Task{Description: "for a"})
	_ = store.CreateTask(ctx, "user-b", "task-1", taskstore.Task{Description: "for b"})

	taskA, _ := store.GetTask(ctx, "user-a", "task-1")
	taskB, _ := store.GetTask(ctx, "user-b", "task-1")

	fmt.Printf("user-a: %s\n", taskA.Description)
	fmt.Printf("user-b: %s\n", taskB.Description)

	// Output:
	// user-a: for a
	// user-b: for b
}
