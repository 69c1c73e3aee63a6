package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shwilliamson/taskdeck/internal/store"
)

// Log holds the undo and redo stacks for one task scope, most recent
// last. An Action enters the undo stack only after its mutation has
// been confirmed by the server; a failed optimistic mutation is never
// recorded, so there is nothing to undo for it.
type Log struct {
	store *store.TaskStore
	log   *slog.Logger
	undo  []*Action
	redo  []*Action
	mu    sync.Mutex
}

// NewLog creates an empty Log that dispatches inverse and forward
// effects through the given store.
func NewLog(s *store.TaskStore, logger *slog.Logger) *Log {
	return &Log{
		store: s,
		log:   logger.With(slog.String("scope", "history")),
	}
}

// Record appends an Action to the undo stack and discards the redo
// stack: a new confirmed mutation makes the diverged future
// unreachable (linear undo, not a tree).
func (l *Log) Record(a *Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = append(l.undo, a)
	l.redo = nil
	l.log.Debug("action recorded", slog.String("kind", a.Kind.String()))
}

// CanUndo reports whether the undo stack is non-empty.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redo) > 0
}

// Clear empties both stacks. Called when the scope changes; history is
// not meaningful across scopes.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.undo = nil
	l.redo = nil
}

// Undo dispatches the inverse of the most recent Action. Only on
// success does the Action move to the redo stack; on failure both
// stacks are left exactly as they were and the error propagates, so
// the caller can report it and retry.
func (l *Log) Undo(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.undo) == 0 {
		return nil
	}
	a := l.undo[len(l.undo)-1]
	if err := l.dispatchUndo(ctx, a); err != nil {
		l.log.Warn("undo failed", slog.String("kind", a.Kind.String()), slog.String("error", err.Error()))
		return fmt.Errorf("undo %s: %w", a.Kind, err)
	}
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, a)
	return nil
}

// Redo dispatches the forward effect of the most recently undone
// Action. Symmetric with Undo: stacks move only on success.
func (l *Log) Redo(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.redo) == 0 {
		return nil
	}
	a := l.redo[len(l.redo)-1]
	if err := l.dispatchRedo(ctx, a); err != nil {
		l.log.Warn("redo failed", slog.String("kind", a.Kind.String()), slog.String("error", err.Error()))
		return fmt.Errorf("redo %s: %w", a.Kind, err)
	}
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, a)
	return nil
}

// dispatchUndo applies the inverse effect of a. Toggle and reorder
// invert themselves given the right argument; add and delete cross
// over into each other with the new-id asymmetry noted on Action.
func (l *Log) dispatchUndo(ctx context.Context, a *Action) error {
	switch a.Kind {
	case KindAddTask:
		_, _, err := l.store.Delete(ctx, a.Task.ID)
		return err
	case KindDeleteTask:
		task, err := a.Recreate(ctx)
		if err != nil {
			return err
		}
		a.Task = task.Clone()
		return nil
	case KindCompleteTask:
		_, err := l.store.ToggleComplete(ctx, a.TaskID)
		return err
	case KindEditTitle:
		_, err := l.store.UpdateTitle(ctx, a.TaskID, a.PrevTitle)
		return err
	case KindReorderTasks:
		_, err := l.store.Reorder(ctx, a.PrevOrders)
		return err
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
}

func (l *Log) dispatchRedo(ctx context.Context, a *Action) error {
	switch a.Kind {
	case KindAddTask:
		task, err := l.store.Create(ctx, a.Task.Title)
		if err != nil {
			return err
		}
		a.Task = task.Clone()
		return nil
	case KindDeleteTask:
		captured, undo, err := l.store.Delete(ctx, a.Task.ID)
		if err != nil {
			return err
		}
		a.Task = captured.Clone()
		a.Recreate = undo
		return nil
	case KindCompleteTask:
		_, err := l.store.ToggleComplete(ctx, a.TaskID)
		return err
	case KindEditTitle:
		_, err := l.store.UpdateTitle(ctx, a.TaskID, a.NewTitle)
		return err
	case KindReorderTasks:
		_, err := l.store.Reorder(ctx, a.NewOrders)
		return err
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
}
