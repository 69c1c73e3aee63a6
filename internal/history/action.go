// Package history implements the undo/redo engine: an invertible log
// of confirmed mutations plus the recording adapter that feeds it.
package history

import (
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/store"
)

// Kind identifies an Action variant.
type Kind int

// Action variants.
const (
	KindAddTask Kind = iota
	KindDeleteTask
	KindCompleteTask
	KindEditTitle
	KindReorderTasks
)

// String returns the variant name for logs and status lines.
func (k Kind) String() string {
	switch k {
	case KindAddTask:
		return "add task"
	case KindDeleteTask:
		return "delete task"
	case KindCompleteTask:
		return "complete task"
	case KindEditTitle:
		return "edit title"
	case KindReorderTasks:
		return "reorder tasks"
	default:
		return "unknown"
	}
}

// Action records one confirmed mutation with exactly the information
// needed to undo and redo it without consulting current store state.
// All entity data is held as snapshot copies, never live references.
//
// Add and delete are asymmetric: the backend is the sole id issuer, so
// undoing a delete recreates an equivalent task under a new id, and
// redoing an add does the same. After either, Task and Recreate are
// refreshed so the next inverse targets the live entity.
//
// Fields are ordered to minimize memory padding.
type Action struct {
	At         time.Time          // diagnostics only, never used for ordering
	Task       *domain.Task       // AddTask: created entity; DeleteTask: captured copy
	Recreate   store.UndoDelete   // DeleteTask: closure recreating via Create
	TaskID     string             // CompleteTask, EditTitle
	PrevTitle  string             // EditTitle
	NewTitle   string             // EditTitle
	PrevOrders []domain.OrderPair // ReorderTasks
	NewOrders  []domain.OrderPair // ReorderTasks
	Kind       Kind
}
