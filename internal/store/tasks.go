// Package store holds the optimistic in-memory collections that back
// the UI. Each store owns one scope (a list's tasks, or a user's
// lists): mutations apply a tentative local change immediately, call
// the remote client, and either swap in the server's canonical data or
// roll back to the pre-call snapshot.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// UndoDelete recreates an equivalent task after a confirmed delete.
// Recreation goes through Create, so the new task gets a fresh
// server-issued id and lands at the end of the current order; the
// original id and position are unrecoverable against an id-issuing
// backend.
type UndoDelete func(ctx context.Context) (*domain.Task, error)

// TaskStore owns the live task collection for one list scope.
// The collection is guarded by a mutex so TUI command goroutines can
// overlap; rollback correctness comes from pre-call snapshots, not
// from serializing the calls. When two mutations of the same entity
// overlap, the response that arrives last wins.
type TaskStore struct {
	remote  domain.TaskService
	lists   domain.ListSink // optional, receives owning-list side effects
	clock   domain.Clock
	logger  *slog.Logger
	listID  string
	tasks   []*domain.Task
	lastErr error
	mu      sync.RWMutex
	loading bool
}

// NewTaskStore creates a TaskStore for one list scope.
func NewTaskStore(listID string, remote domain.TaskService, clock domain.Clock, logger *slog.Logger) *TaskStore {
	return &TaskStore{
		listID: listID,
		remote: remote,
		clock:  clock,
		logger: logger.With(slog.String("scope", "tasks"), slog.String("list", listID)),
	}
}

// WithListSink wires the sink that receives canonical owning-list
// copies piggybacked on task mutation responses.
func (s *TaskStore) WithListSink(sink domain.ListSink) *TaskStore {
	s.lists = sink
	return s
}

// ListID returns the scope's list id.
func (s *TaskStore) ListID() string {
	return s.listID
}

// Tasks returns a copy of the collection in display order.
func (s *TaskStore) Tasks() []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

// Get returns a copy of the task with the given id, or nil.
func (s *TaskStore) Get(id string) *domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOfTask(s.tasks, id); i >= 0 {
		return s.tasks[i].Clone()
	}
	return nil
}

// Len returns the number of tasks in the scope.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// IsLoading reports whether a full refresh is in flight.
func (s *TaskStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the last full refresh, if any.
func (s *TaskStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Load replaces the collection with the server's current state.
// Used for the initial fill and explicit refresh, never for the
// optimistic path.
func (s *TaskStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	remote, err := s.remote.List(ctx, s.listID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.tasks = cloneTasks(remote)
	sortTasks(s.tasks)
	s.lastErr = nil
	return nil
}

// Create validates the title, appends a temp task immediately, and
// confirms it with the server. On success the temp entity is replaced
// in place by the canonical one; on failure it is removed entirely and
// the collection returns to its pre-call shape.
func (s *TaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	trimmed, err := domain.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if len(s.tasks) >= domain.MaxTasksPerList {
		s.mu.Unlock()
		return nil, domain.ErrTaskLimit
	}
	now := s.clock.Now()
	temp := &domain.Task{
		ID:        domain.NewTempID(),
		ListID:    s.listID,
		Title:     trimmed,
		Order:     maxTaskOrder(s.tasks) + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks = append(s.tasks, temp)
	s.mu.Unlock()

	res, err := s.remote.Create(ctx, s.listID, domain.TaskFields{Title: trimmed, Order: temp.Order})
	if err != nil {
		s.mu.Lock()
		s.tasks = removeTaskByID(s.tasks, temp.ID)
		s.mu.Unlock()
		s.logger.Warn("create rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	canonical := res.Task.Clone()
	s.mu.Lock()
	if !replaceTaskByID(s.tasks, temp.ID, canonical) {
		// Scope was reloaded underneath us; fall back to id-keyed merge.
		if indexOfTask(s.tasks, canonical.ID) < 0 {
			s.tasks = insertTaskByOrder(s.tasks, canonical)
		}
	}
	s.mu.Unlock()
	s.applyListSideEffect(res.List)
	s.logger.Debug("task created", slog.String("id", canonical.ID))
	return canonical.Clone(), nil
}

// ToggleComplete flips the completion flag locally, then confirms with
// the server. On failure the flag is restored to its captured original
// value rather than flipped again, so a racing second toggle cannot be
// double-reverted.
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.Lock()
	i := indexOfTask(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrTaskNotFound
	}
	was := s.tasks[i].IsCompleted
	wasUpdated := s.tasks[i].UpdatedAt
	flipped := !was
	s.tasks[i].IsCompleted = flipped
	s.tasks[i].UpdatedAt = s.clock.Now()
	s.mu.Unlock()

	res, err := s.remote.Update(ctx, s.listID, id, domain.TaskPatch{IsCompleted: &flipped})
	if err != nil {
		s.mu.Lock()
		if j := indexOfTask(s.tasks, id); j >= 0 {
			s.tasks[j].IsCompleted = was
			s.tasks[j].UpdatedAt = wasUpdated
		}
		s.mu.Unlock()
		s.logger.Warn("toggle rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	canonical := res.Task.Clone()
	s.mu.Lock()
	replaceTaskByID(s.tasks, id, canonical)
	s.mu.Unlock()
	s.applyListSideEffect(res.List)
	return canonical.Clone(), nil
}

// UpdateTitle applies a new title locally and confirms with the server.
// Setting the current title again is a no-op: no network call is made
// and the store is untouched.
func (s *TaskStore) UpdateTitle(ctx context.Context, id, newTitle string) (*domain.Task, error) {
	trimmed, err := domain.ValidateTitle(newTitle)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	i := indexOfTask(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrTaskNotFound
	}
	if s.tasks[i].Title == trimmed {
		clone := s.tasks[i].Clone()
		s.mu.Unlock()
		return clone, nil
	}
	prevTitle := s.tasks[i].Title
	prevUpdated := s.tasks[i].UpdatedAt
	s.tasks[i].Title = trimmed
	s.tasks[i].UpdatedAt = s.clock.Now()
	s.mu.Unlock()

	res, err := s.remote.Update(ctx, s.listID, id, domain.TaskPatch{Title: &trimmed})
	if err != nil {
		s.mu.Lock()
		if j := indexOfTask(s.tasks, id); j >= 0 {
			s.tasks[j].Title = prevTitle
			s.tasks[j].UpdatedAt = prevUpdated
		}
		s.mu.Unlock()
		s.logger.Warn("title edit rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	canonical := res.Task.Clone()
	s.mu.Lock()
	replaceTaskByID(s.tasks, id, canonical)
	s.mu.Unlock()
	s.applyListSideEffect(res.List)
	return canonical.Clone(), nil
}

// Delete removes the task locally, then confirms with the server. On
// success it returns the captured copy plus an UndoDelete closure; on
// failure the captured copy is re-inserted at its sorted position.
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, UndoDelete, error) {
	s.mu.Lock()
	i := indexOfTask(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, nil, domain.ErrTaskNotFound
	}
	captured := s.tasks[i].Clone()
	s.tasks = removeTaskByID(s.tasks, id)
	s.mu.Unlock()

	if err := s.remote.Delete(ctx, s.listID, id); err != nil {
		s.mu.Lock()
		s.tasks = insertTaskByOrder(s.tasks, captured)
		s.mu.Unlock()
		s.logger.Warn("delete rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, nil, err
	}

	undo := func(ctx context.Context) (*domain.Task, error) {
		return s.Create(ctx, captured.Title)
	}
	s.logger.Debug("task deleted", slog.String("id", id))
	return captured.Clone(), undo, nil
}

// Reorder applies a complete batch of order assignments. A malformed
// batch, including one naming an id outside the scope, is rejected as
// a validation error before any local change. The whole batch is
// all-or-nothing: on failure the entire pre-mutation snapshot is
// restored verbatim, never a partial merge.
func (s *TaskStore) Reorder(ctx context.Context, orders []domain.OrderPair) ([]*domain.Task, error) {
	s.mu.Lock()
	for _, p := range orders {
		if indexOfTask(s.tasks, p.ID) < 0 {
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: reorder references unknown task %s", domain.ErrValidation, p.ID)
		}
		if p.Order < 1 {
			s.mu.Unlock()
			return nil, domain.ErrInvalidOrder
		}
	}
	snapshot := cloneTasks(s.tasks)
	for _, p := range orders {
		if i := indexOfTask(s.tasks, p.ID); i >= 0 {
			s.tasks[i].Order = p.Order
		}
	}
	sortTasks(s.tasks)
	s.mu.Unlock()

	canonical, err := s.remote.Reorder(ctx, s.listID, orders)
	if err != nil {
		s.mu.Lock()
		s.tasks = snapshot
		s.mu.Unlock()
		s.logger.Warn("reorder rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	for _, t := range canonical {
		replaceTaskByID(s.tasks, t.ID, t.Clone())
	}
	sortTasks(s.tasks)
	result := cloneTasks(s.tasks)
	s.mu.Unlock()
	return result, nil
}

// Orders returns the current id-to-order assignment in display order,
// suitable for building a Reorder batch.
func (s *TaskStore) Orders() []domain.OrderPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pairs := make([]domain.OrderPair, len(s.tasks))
	for i, t := range s.tasks {
		pairs[i] = domain.OrderPair{ID: t.ID, Order: t.Order}
	}
	return pairs
}

func (s *TaskStore) applyListSideEffect(list *domain.List) {
	if list == nil || s.lists == nil {
		return
	}
	s.lists.ApplyRemote(list)
}
