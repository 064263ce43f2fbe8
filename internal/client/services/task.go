package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hikariatama/sharder/internal/logging"
)

type TaskKind string

const (
	TaskUpload   TaskKind = "upload"
	TaskDownload TaskKind = "download"
)

type TaskState string

const (
	TaskPending TaskState = "pending"
	TaskSuccess TaskState = "success"
	TaskFailed  TaskState = "failed"
	// TaskAborted is a download invalidated by a newer one.
	TaskAborted TaskState = "aborted"
)

// Task is one in-flight transfer. It is registered while pending and
// dropped once settled.
type Task struct {
	ID     string
	Kind   TaskKind
	Target string
	State  TaskState
}

// taskRegistry tracks pending tasks.
type taskRegistry struct {
	mu    sync.Mutex
	tasks map[string]*Task
	order []string
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{tasks: make(map[string]*Task)}
}

func (r *taskRegistry) start(kind TaskKind, target string) *Task {
	t := &Task{ID: uuid.NewString(), Kind: kind, Target: target, State: TaskPending}
	r.mu.Lock()
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	r.mu.Unlock()
	return t
}

// settle records the final state, logs it and forgets the task.
func (r *taskRegistry) settle(ctx context.Context, log logging.Logger, t *Task, state TaskState, err error) {
	r.mu.Lock()
	t.State = state
	delete(r.tasks, t.ID)
	for i, id := range r.order {
		if id == t.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	args := []any{"task", t.ID, "kind", t.Kind, "target", t.Target, "state", state}
	switch state {
	case TaskFailed:
		log.Warn(ctx, "transfer failed", append(args, "error", err)...)
	case TaskAborted:
		log.Debug(ctx, "transfer superseded", args...)
	default:
		log.Debug(ctx, "transfer settled", args...)
	}
}

// pending returns copies of the pending tasks in start order.
func (r *taskRegistry) pending() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.tasks[id])
	}
	return out
}
