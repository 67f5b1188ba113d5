// Package taskstore provides task record storage for automation bridges:
// units of work with a status, an execution history, media artifacts and an
// optional in-process agent handle, partitioned per user.
//
// # Quick Start
//
// Create a store and drive a task through its lifecycle:
//
//	store, err := taskstore.New(taskstore.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id := taskstore.NewTaskID()
//	store.CreateTask(ctx, "", id, taskstore.Task{
//	    Status:      taskstore.StatusCreated,
//	    Description: "open the dashboard and export the report",
//	    CreatedAt:   taskstore.Timestamp(time.Now()),
//	})
//	store.UpdateTaskStatus(ctx, "", id, taskstore.StatusRunning)
//	store.AddTaskStep(ctx, "", id, taskstore.Step{"step": 1, "url": "https://example.com"})
//	store.SetTaskOutput(ctx, "", id, "report.csv")
//	store.MarkTaskFinished(ctx, "", id, "")
//
// An empty user ID selects the store's default user namespace, so
// single-tenant callers never need to think about namespacing. Multi-tenant
// callers pass an explicit user ID, task IDs are unique per user, not
// globally.
//
// # Agent Handles
//
// A task can carry an opaque handle to a long-lived in-process object (for
// example the browser agent executing it). The handle is held out-of-band:
// it is never part of the records returned by GetTask or ListTasks and is
// reachable only through SetTaskAgent/GetTaskAgent.
//
// # Error Handling
//
// Mutating operations on a task that does not exist fail with an error
// matching [ErrNotFound], they never create the task implicitly. Read
// operations never fail on missing data: GetTask and GetTaskAgent return nil
// and ListTasks returns an empty page. [New] fails with an error matching
// [ErrNotValid] when given an unknown storage kind.
//
// # Thread Safety
//
// Stores returned by [New] are safe for concurrent use from multiple
// goroutines.
package taskstore
