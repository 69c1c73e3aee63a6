package domain

import (
	"context"
	"time"
)

// TaskFields carries the attributes for creating a task.
type TaskFields struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// TaskResult is the server's response to a single-task mutation.
// List is non-nil when the server also bumped the owning list's
// updatedAt; the store pushes it into the list scope so that
// sort-by-recency stays correct without an extra round trip.
type TaskResult struct {
	Task *Task
	List *List
}

// TaskService is the remote mutation client for one list's tasks.
// Every call runs to completion; there is no cancellation path beyond
// the context's own deadline inside the transport.
type TaskService interface {
	// List retrieves all tasks in the list, used for full refresh only.
	List(ctx context.Context, listID string) ([]*Task, error)

	// Create creates a task and returns the canonical entity.
	Create(ctx context.Context, listID string, fields TaskFields) (*TaskResult, error)

	// Update applies a partial update and returns the canonical entity.
	Update(ctx context.Context, listID, taskID string, patch TaskPatch) (*TaskResult, error)

	// Delete removes a task permanently.
	Delete(ctx context.Context, listID, taskID string) error

	// Reorder applies a complete batch of order assignments and returns
	// the canonical copies of every affected task.
	Reorder(ctx context.Context, listID string, orders []OrderPair) ([]*Task, error)
}

// ListFields carries the attributes for creating a list.
type ListFields struct {
	Title string `json:"title"`
}

// ListPatch carries a partial list update. Nil fields are left unchanged.
type ListPatch struct {
	Title    *string `json:"title,omitempty"`
	IsPinned *bool   `json:"isPinned,omitempty"`
}

// ListService is the remote mutation client for a user's lists.
type ListService interface {
	// List retrieves all lists, used for full refresh only.
	List(ctx context.Context) ([]*List, error)

	// Create creates a list and returns the canonical entity.
	Create(ctx context.Context, fields ListFields) (*List, error)

	// Update applies a partial update and returns the canonical entity.
	Update(ctx context.Context, listID string, patch ListPatch) (*List, error)

	// Delete removes a list and all of its tasks permanently.
	Delete(ctx context.Context, listID string) error
}

// ListSink receives canonical list copies that arrive as side effects
// of task mutations.
type ListSink interface {
	ApplyRemote(list *List)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
