package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// ListStore owns the live list collection for one user scope. It
// follows the same optimistic contract as TaskStore, minus ordering:
// lists sort pinned-first, then by recency.
type ListStore struct {
	remote  domain.ListService
	clock   domain.Clock
	logger  *slog.Logger
	lists   []*domain.List
	lastErr error
	mu      sync.RWMutex
	loading bool
}

// NewListStore creates a ListStore for the authenticated user's lists.
func NewListStore(remote domain.ListService, clock domain.Clock, logger *slog.Logger) *ListStore {
	return &ListStore{
		remote: remote,
		clock:  clock,
		logger: logger.With(slog.String("scope", "lists")),
	}
}

// Ensure ListStore can receive task-mutation side effects.
var _ domain.ListSink = (*ListStore)(nil)

// Lists returns a copy of the collection in display order.
func (s *ListStore) Lists() []*domain.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLists(s.lists)
}

// Get returns a copy of the list with the given id, or nil.
func (s *ListStore) Get(id string) *domain.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOfList(s.lists, id); i >= 0 {
		return s.lists[i].Clone()
	}
	return nil
}

// Len returns the number of lists in the scope.
func (s *ListStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists)
}

// IsLoading reports whether a full refresh is in flight.
func (s *ListStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error recorded by the last full refresh, if any.
func (s *ListStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Load replaces the collection with the server's current state.
func (s *ListStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	remote, err := s.remote.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		return err
	}
	s.lists = cloneLists(remote)
	sortLists(s.lists)
	s.lastErr = nil
	return nil
}

// Create validates the title, appends a temp list immediately, and
// confirms it with the server.
func (s *ListStore) Create(ctx context.Context, title string) (*domain.List, error) {
	trimmed, err := domain.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if len(s.lists) >= domain.MaxListsPerUser {
		s.mu.Unlock()
		return nil, domain.ErrListLimit
	}
	now := s.clock.Now()
	temp := &domain.List{
		ID:        domain.NewTempID(),
		Title:     trimmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.lists = append(s.lists, temp)
	s.mu.Unlock()

	canonical, err := s.remote.Create(ctx, domain.ListFields{Title: trimmed})
	if err != nil {
		s.mu.Lock()
		s.lists = removeListByID(s.lists, temp.ID)
		s.mu.Unlock()
		s.logger.Warn("create rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	clone := canonical.Clone()
	s.mu.Lock()
	if i := indexOfList(s.lists, temp.ID); i >= 0 {
		s.lists[i] = clone
	} else if indexOfList(s.lists, clone.ID) < 0 {
		s.lists = append(s.lists, clone)
	}
	sortLists(s.lists)
	s.mu.Unlock()
	s.logger.Debug("list created", slog.String("id", clone.ID))
	return clone.Clone(), nil
}

// Rename applies a new title locally and confirms with the server.
// Renaming to the current title is a no-op.
func (s *ListStore) Rename(ctx context.Context, id, newTitle string) (*domain.List, error) {
	trimmed, err := domain.ValidateTitle(newTitle)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	i := indexOfList(s.lists, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrListNotFound
	}
	if s.lists[i].Title == trimmed {
		clone := s.lists[i].Clone()
		s.mu.Unlock()
		return clone, nil
	}
	prevTitle := s.lists[i].Title
	prevUpdated := s.lists[i].UpdatedAt
	s.lists[i].Title = trimmed
	s.lists[i].UpdatedAt = s.clock.Now()
	s.mu.Unlock()

	canonical, err := s.remote.Update(ctx, id, domain.ListPatch{Title: &trimmed})
	if err != nil {
		s.mu.Lock()
		if j := indexOfList(s.lists, id); j >= 0 {
			s.lists[j].Title = prevTitle
			s.lists[j].UpdatedAt = prevUpdated
		}
		s.mu.Unlock()
		s.logger.Warn("rename rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	s.applyCanonical(canonical)
	return canonical.Clone(), nil
}

// TogglePin flips the pinned flag locally and confirms with the
// server. On failure the flag is restored to its captured original.
func (s *ListStore) TogglePin(ctx context.Context, id string) (*domain.List, error) {
	s.mu.Lock()
	i := indexOfList(s.lists, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrListNotFound
	}
	was := s.lists[i].IsPinned
	wasUpdated := s.lists[i].UpdatedAt
	pinned := !was
	s.lists[i].IsPinned = pinned
	s.lists[i].UpdatedAt = s.clock.Now()
	sortLists(s.lists)
	s.mu.Unlock()

	canonical, err := s.remote.Update(ctx, id, domain.ListPatch{IsPinned: &pinned})
	if err != nil {
		s.mu.Lock()
		if j := indexOfList(s.lists, id); j >= 0 {
			s.lists[j].IsPinned = was
			s.lists[j].UpdatedAt = wasUpdated
			sortLists(s.lists)
		}
		s.mu.Unlock()
		s.logger.Warn("pin rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	s.applyCanonical(canonical)
	return canonical.Clone(), nil
}

// Delete removes the list locally, then confirms with the server. On
// failure the captured copy is re-inserted.
func (s *ListStore) Delete(ctx context.Context, id string) (*domain.List, error) {
	s.mu.Lock()
	i := indexOfList(s.lists, id)
	if i < 0 {
		s.mu.Unlock()
		return nil, domain.ErrListNotFound
	}
	captured := s.lists[i].Clone()
	s.lists = removeListByID(s.lists, id)
	s.mu.Unlock()

	if err := s.remote.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.lists = append(s.lists, captured)
		sortLists(s.lists)
		s.mu.Unlock()
		s.logger.Warn("delete rolled back", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Debug("list deleted", slog.String("id", id))
	return captured.Clone(), nil
}

// ApplyRemote merges a canonical list copy that arrived as a side
// effect of a task mutation (the server bumps the owning list's
// updatedAt and counts).
func (s *ListStore) ApplyRemote(list *domain.List) {
	if list == nil {
		return
	}
	s.applyCanonical(list)
}

func (s *ListStore) applyCanonical(list *domain.List) {
	clone := list.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOfList(s.lists, clone.ID); i >= 0 {
		s.lists[i] = clone
	} else {
		s.lists = append(s.lists, clone)
	}
	sortLists(s.lists)
}
