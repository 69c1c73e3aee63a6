package history

import (
	"context"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/store"
)

// Tasks is the recording adapter between UI handlers and the task
// store. For each operation it captures the pre-mutation values an
// Action needs, invokes the store, and records the Action only after
// the store confirms success. Constructed without a Log it degrades to
// plain pass-through; the store itself never depends on the Log.
type Tasks struct {
	store *store.TaskStore
	log   *Log // nil = recording disabled
	clock domain.Clock
}

// NewTasks creates the adapter. Pass a nil log for views that do not
// need undo/redo.
func NewTasks(s *store.TaskStore, log *Log, clock domain.Clock) *Tasks {
	return &Tasks{store: s, log: log, clock: clock}
}

// Store exposes the underlying store for reads.
func (a *Tasks) Store() *store.TaskStore {
	return a.store
}

// Log returns the action log, or nil when recording is disabled.
func (a *Tasks) Log() *Log {
	return a.log
}

// Create adds a task and records an AddTask action on success.
func (a *Tasks) Create(ctx context.Context, title string) (*domain.Task, error) {
	task, err := a.store.Create(ctx, title)
	if err != nil {
		return nil, err
	}
	a.record(&Action{
		Kind: KindAddTask,
		Task: task.Clone(),
		At:   a.clock.Now(),
	})
	return task, nil
}

// ToggleComplete flips completion and records a CompleteTask action on
// success. The action is its own inverse, so no prior value is needed.
func (a *Tasks) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := a.store.ToggleComplete(ctx, id)
	if err != nil {
		return nil, err
	}
	a.record(&Action{
		Kind:   KindCompleteTask,
		TaskID: id,
		At:     a.clock.Now(),
	})
	return task, nil
}

// UpdateTitle edits a title and records an EditTitle action on
// success. Setting the current title again records nothing: the store
// treats it as a no-op and there is no change to invert.
func (a *Tasks) UpdateTitle(ctx context.Context, id, newTitle string) (*domain.Task, error) {
	prev := a.store.Get(id)
	task, err := a.store.UpdateTitle(ctx, id, newTitle)
	if err != nil {
		return nil, err
	}
	if prev == nil || prev.Title == task.Title {
		return task, nil
	}
	a.record(&Action{
		Kind:      KindEditTitle,
		TaskID:    id,
		PrevTitle: prev.Title,
		NewTitle:  task.Title,
		At:        a.clock.Now(),
	})
	return task, nil
}

// Delete removes a task and records a DeleteTask action carrying the
// captured copy and the recreate closure.
func (a *Tasks) Delete(ctx context.Context, id string) (*domain.Task, error) {
	captured, undo, err := a.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	a.record(&Action{
		Kind:     KindDeleteTask,
		Task:     captured.Clone(),
		Recreate: undo,
		At:       a.clock.Now(),
	})
	return captured, nil
}

// Reorder applies a batch of order assignments and records a
// ReorderTasks action holding both the prior and the new assignment.
func (a *Tasks) Reorder(ctx context.Context, orders []domain.OrderPair) ([]*domain.Task, error) {
	prev := a.store.Orders()
	tasks, err := a.store.Reorder(ctx, orders)
	if err != nil {
		return nil, err
	}
	a.record(&Action{
		Kind:       KindReorderTasks,
		PrevOrders: prev,
		NewOrders:  append([]domain.OrderPair(nil), orders...),
		At:         a.clock.Now(),
	})
	return tasks, nil
}

func (a *Tasks) record(action *Action) {
	if a.log == nil {
		return
	}
	a.log.Record(action)
}
