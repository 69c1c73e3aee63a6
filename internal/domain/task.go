// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
	"time"
)

// Limits enforced client-side before any network call.
const (
	MaxTitleLen     = 64
	MaxTasksPerList = 25
	MaxListsPerUser = 10
)

// Task represents a single item inside a list.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	ListID      string    `json:"listID"`
	Title       string    `json:"title"`
	Order       int       `json:"order"` // display position, dense 1..N within a list
	IsCompleted bool      `json:"isCompleted"`
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	dup := *t
	return &dup
}

// IsPending returns true while the task only exists locally,
// awaiting server confirmation.
func (t *Task) IsPending() bool {
	return IsTempID(t.ID)
}

// List represents a collection of tasks owned by a user.
// TaskCount and CompletedCount are derived from the list's tasks
// server-side and never maintained independently here.
type List struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	TaskCount      int       `json:"taskCount"`
	CompletedCount int       `json:"completedCount"`
	IsPinned       bool      `json:"isPinned"`
}

// Clone returns an independent copy of the list.
func (l *List) Clone() *List {
	dup := *l
	return &dup
}

// IsPending returns true while the list only exists locally.
func (l *List) IsPending() bool {
	return IsTempID(l.ID)
}

// ValidateTitle trims the title and checks it against the length limits.
// Returns the trimmed title on success.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}
	if len([]rune(trimmed)) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

// OrderPair assigns a display order to an entity id.
type OrderPair struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
