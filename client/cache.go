package client

import (
	"context"
	"fmt"
	"sync"

	task "github.com/example/task-dashboard/domain/task"
)

// OpState is the lifecycle state of a single cache operation.
type OpState string

// Operation states. Local cache state mutates only on the
// pending -> applied edge; a failed operation leaves it untouched.
const (
	OpIdle    OpState = "idle"
	OpPending OpState = "pending"
	OpApplied OpState = "applied"
	OpFailed  OpState = "failed"
)

// operation tracks one in-flight mutation through its state machine.
type operation struct {
	state OpState
}

func newOperation() *operation {
	return &operation{state: OpIdle}
}

// transition performs a validated state change. The caller supplies the
// expected prior state so invalid sequences are observable.
func (o *operation) transition(from, to OpState) error {
	if o.state != from {
		return fmt.Errorf("invalid transition: expected %s, got %s", from, o.state)
	}
	if !allowedTransition(from, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", from, to)
	}
	o.state = to
	return nil
}

func allowedTransition(from, to OpState) bool {
	switch from {
	case OpIdle:
		return to == OpPending
	case OpPending:
		return to == OpApplied || to == OpFailed
	default:
		return false
	}
}

// TaskCache is a session-local mirror of the signed-in user's tasks,
// synchronized strictly through server responses. It is deliberately not
// optimistic: Add, Edit and Remove wait for server confirmation before
// touching local state, so local state never diverges from the last-known
// server truth for any entry it has touched. Refresh performs a full
// replace to reconcile entries changed by other means.
type TaskCache struct {
	api *Client

	mu      sync.Mutex
	tasks   []task.Task
	loading bool
	lastErr error
}

// NewTaskCache creates a TaskCache backed by the given API client. The
// client's token comes from an explicit Session, wired by the caller.
func NewTaskCache(api *Client) *TaskCache {
	return &TaskCache{
		api: api,
	}
}

// Tasks returns a copy of the local task sequence, in server response order.
func (tc *TaskCache) Tasks() []task.Task {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	out := make([]task.Task, len(tc.tasks))
	copy(out, tc.tasks)
	return out
}

// Loading reports whether a Refresh call is outstanding.
func (tc *TaskCache) Loading() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.loading
}

// Err returns the last Refresh failure, nil after a successful Refresh.
func (tc *TaskCache) Err() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.lastErr
}

// Refresh replaces the entire local sequence with the server's. On
// failure the prior tasks stay untouched and the error is recorded in a
// visible state rather than returned, since Refresh is typically driven
// by lifecycle events rather than direct user action.
func (tc *TaskCache) Refresh(ctx context.Context) {
	tc.mu.Lock()
	tc.loading = true
	tc.mu.Unlock()

	tasks, err := tc.api.ListTasks(ctx)

	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.loading = false
	if err != nil {
		tc.lastErr = err
		return
	}
	tc.tasks = tasks
	tc.lastErr = nil
}

// Add creates a task on the server and, on success, appends the returned
// task locally and returns it. Failure is delivered to the caller and
// leaves both local state and the shared error untouched.
func (tc *TaskCache) Add(ctx context.Context, draft TaskDraft) (*task.Task, error) {
	op := newOperation()
	op.transition(OpIdle, OpPending)

	created, err := tc.api.CreateTask(ctx, draft)
	if err != nil {
		op.transition(OpPending, OpFailed)
		return nil, err
	}

	tc.mu.Lock()
	tc.upsert(*created)
	tc.mu.Unlock()
	op.transition(OpPending, OpApplied)
	return created, nil
}

// Edit updates a task on the server and, on success, replaces the
// matching local entry with the returned task.
func (tc *TaskCache) Edit(ctx context.Context, id string, patch TaskPatch) (*task.Task, error) {
	op := newOperation()
	op.transition(OpIdle, OpPending)

	updated, err := tc.api.UpdateTask(ctx, id, patch)
	if err != nil {
		op.transition(OpPending, OpFailed)
		return nil, err
	}

	tc.mu.Lock()
	tc.replace(*updated)
	tc.mu.Unlock()
	op.transition(OpPending, OpApplied)
	return updated, nil
}

// Remove deletes a task on the server and, on success, drops the matching
// local entry.
func (tc *TaskCache) Remove(ctx context.Context, id string) error {
	op := newOperation()
	op.transition(OpIdle, OpPending)

	if err := tc.api.DeleteTask(ctx, id); err != nil {
		op.transition(OpPending, OpFailed)
		return err
	}

	tc.mu.Lock()
	tc.drop(id)
	tc.mu.Unlock()
	op.transition(OpPending, OpApplied)
	return nil
}

// upsert replaces an existing entry by id or appends. The replace path
// keeps a late Add response idempotent instead of duplicating the entry.
func (tc *TaskCache) upsert(t task.Task) {
	for i := range tc.tasks {
		if tc.tasks[i].ID == t.ID {
			tc.tasks[i] = t
			return
		}
	}
	tc.tasks = append(tc.tasks, t)
}

// replace swaps the entry matching by id. A response arriving after the
// entry is gone is a no-op, never an append.
func (tc *TaskCache) replace(t task.Task) {
	for i := range tc.tasks {
		if tc.tasks[i].ID == t.ID {
			tc.tasks[i] = t
			return
		}
	}
}

// drop removes the entry matching by id.
func (tc *TaskCache) drop(id string) {
	for i := range tc.tasks {
		if tc.tasks[i].ID == id {
			tc.tasks = append(tc.tasks[:i], tc.tasks[i+1:]...)
			return
		}
	}
}
