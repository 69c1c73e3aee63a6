// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward and returns the new time.
func (m *MockClock) Advance(d time.Duration) time.Time {
	m.NowTime = m.NowTime.Add(d)
	return m.NowTime
}

// MockTaskService is a test double for domain.TaskService. It issues
// sequential server ids and keeps a canonical task set per list, so
// tests can drive the full optimistic round trip. Any of the *Err
// fields forces the corresponding call to fail; FailNext fails exactly
// one upcoming call regardless of operation.
// Fields are ordered to minimize memory padding.
type MockTaskService struct {
	Tasks      map[string][]*domain.Task // listID -> canonical tasks
	SideEffect *domain.List              // attached to every mutation result when set
	ListErr    error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	ReorderErr error
	FailNext   error
	Now        time.Time
	NextIDN    int
	Calls      []string // operation names in invocation order
}

// NewMockTaskService creates a MockTaskService with initialized state.
func NewMockTaskService() *MockTaskService {
	return &MockTaskService{
		Tasks:   make(map[string][]*domain.Task),
		NextIDN: 1,
		Now:     time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC),
	}
}

// Seed installs a canonical task directly, bypassing Create.
func (m *MockTaskService) Seed(listID string, task *domain.Task) {
	task.ListID = listID
	m.Tasks[listID] = append(m.Tasks[listID], task)
}

func (m *MockTaskService) nextID() string {
	id := fmt.Sprintf("task-%d", m.NextIDN)
	m.NextIDN++
	return id
}

func (m *MockTaskService) fail(opErr error) error {
	if m.FailNext != nil {
		err := m.FailNext
		m.FailNext = nil
		return err
	}
	return opErr
}

// List returns the canonical tasks for a list.
func (m *MockTaskService) List(_ context.Context, listID string) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "list")
	if err := m.fail(m.ListErr); err != nil {
		return nil, err
	}
	tasks := make([]*domain.Task, len(m.Tasks[listID]))
	for i, t := range m.Tasks[listID] {
		tasks[i] = t.Clone()
	}
	return tasks, nil
}

// Create issues a server id and stores the canonical task.
func (m *MockTaskService) Create(_ context.Context, listID string, fields domain.TaskFields) (*domain.TaskResult, error) {
	m.Calls = append(m.Calls, "create")
	if err := m.fail(m.CreateErr); err != nil {
		return nil, err
	}
	task := &domain.Task{
		ID:        m.nextID(),
		ListID:    listID,
		Title:     fields.Title,
		Order:     fields.Order,
		CreatedAt: m.Now,
		UpdatedAt: m.Now,
	}
	m.Tasks[listID] = append(m.Tasks[listID], task)
	return &domain.TaskResult{Task: task.Clone(), List: m.SideEffect}, nil
}

// Update patches the canonical task and returns its copy.
func (m *MockTaskService) Update(_ context.Context, listID, taskID string, patch domain.TaskPatch) (*domain.TaskResult, error) {
	m.Calls = append(m.Calls, "update")
	if err := m.fail(m.UpdateErr); err != nil {
		return nil, err
	}
	for _, t := range m.Tasks[listID] {
		if t.ID == taskID {
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.IsCompleted != nil {
				t.IsCompleted = *patch.IsCompleted
			}
			t.UpdatedAt = m.Now
			return &domain.TaskResult{Task: t.Clone(), List: m.SideEffect}, nil
		}
	}
	return nil, &domain.RemoteError{Op: "update task", StatusCode: 404}
}

// Delete removes the canonical task.
func (m *MockTaskService) Delete(_ context.Context, listID, taskID string) error {
	m.Calls = append(m.Calls, "delete")
	if err := m.fail(m.DeleteErr); err != nil {
		return err
	}
	tasks := m.Tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			m.Tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Op: "delete task", StatusCode: 404}
}

// Reorder applies the batch, renumbers densely by the requested
// order, and returns canonical copies of every task in the list.
func (m *MockTaskService) Reorder(_ context.Context, listID string, orders []domain.OrderPair) ([]*domain.Task, error) {
	m.Calls = append(m.Calls, "reorder")
	if err := m.fail(m.ReorderErr); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(orders))
	for _, p := range orders {
		byID[p.ID] = p.Order
	}
	tasks := m.Tasks[listID]
	for _, t := range tasks {
		if order, ok := byID[t.ID]; ok {
			t.Order = order
			t.UpdatedAt = m.Now
		}
	}
	// Dense renumber 1..N in the requested sequence.
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Order < sorted[i].Order {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	result := make([]*domain.Task, len(sorted))
	for i, t := range sorted {
		t.Order = i + 1
		result[i] = t.Clone()
	}
	return result, nil
}

// Ensure mocks satisfy the ports.
var (
	_ domain.TaskService = (*MockTaskService)(nil)
	_ domain.ListService = (*MockListService)(nil)
	_ domain.Clock       = (*MockClock)(nil)
)

// MockListService is a test double for domain.ListService.
// Fields are ordered to minimize memory padding.
type MockListService struct {
	Lists     []*domain.List
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	Now       time.Time
	NextIDN   int
}

// NewMockListService creates a MockListService with initialized state.
func NewMockListService() *MockListService {
	return &MockListService{
		NextIDN: 1,
		Now:     time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC),
	}
}

// List returns the canonical lists.
func (m *MockListService) List(_ context.Context) ([]*domain.List, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	lists := make([]*domain.List, len(m.Lists))
	for i, l := range m.Lists {
		lists[i] = l.Clone()
	}
	return lists, nil
}

// Create issues a server id and stores the canonical list.
func (m *MockListService) Create(_ context.Context, fields domain.ListFields) (*domain.List, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	list := &domain.List{
		ID:        fmt.Sprintf("list-%d", m.NextIDN),
		Title:     fields.Title,
		CreatedAt: m.Now,
		UpdatedAt: m.Now,
	}
	m.NextIDN++
	m.Lists = append(m.Lists, list)
	return list.Clone(), nil
}

// Update patches the canonical list and returns its copy.
func (m *MockListService) Update(_ context.Context, listID string, patch domain.ListPatch) (*domain.List, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for _, l := range m.Lists {
		if l.ID == listID {
			if patch.Title != nil {
				l.Title = *patch.Title
			}
			if patch.IsPinned != nil {
				l.IsPinned = *patch.IsPinned
			}
			l.UpdatedAt = m.Now
			return l.Clone(), nil
		}
	}
	return nil, &domain.RemoteError{Op: "update list", StatusCode: 404}
}

// Delete removes the canonical list.
func (m *MockListService) Delete(_ context.Context, listID string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, l := range m.Lists {
		if l.ID == listID {
			m.Lists = append(m.Lists[:i], m.Lists[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{Op: "delete list", StatusCode: 404}
}
