package api

import (
	"context"
	"net/http"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// TaskAPI implements domain.TaskService against the HTTP API.
type TaskAPI struct {
	client *Client
}

// Ensure TaskAPI implements the port.
var _ domain.TaskService = (*TaskAPI)(nil)

// List retrieves all tasks in a list.
func (a *TaskAPI) List(ctx context.Context, listID string) ([]*domain.Task, error) {
	var payload tasksEnvelope
	err := a.client.do(ctx, "list tasks", http.MethodGet, "/api/lists/"+listID+"/tasks", nil, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Tasks, nil
}

// Create creates a task and returns the canonical entity.
func (a *TaskAPI) Create(ctx context.Context, listID string, fields domain.TaskFields) (*domain.TaskResult, error) {
	var payload taskEnvelope
	err := a.client.do(ctx, "create task", http.MethodPost, "/api/lists/"+listID+"/tasks", fields, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Task == nil {
		return nil, &domain.RemoteError{Op: "create task", Err: errMissingTask}
	}
	return &domain.TaskResult{Task: payload.Task, List: payload.List}, nil
}

// Update applies a partial update and returns the canonical entity.
func (a *TaskAPI) Update(ctx context.Context, listID, taskID string, patch domain.TaskPatch) (*domain.TaskResult, error) {
	var payload taskEnvelope
	err := a.client.do(ctx, "update task", http.MethodPatch, "/api/lists/"+listID+"/tasks/"+taskID, patch, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Task == nil {
		return nil, &domain.RemoteError{Op: "update task", Err: errMissingTask}
	}
	return &domain.TaskResult{Task: payload.Task, List: payload.List}, nil
}

// Delete removes a task permanently.
func (a *TaskAPI) Delete(ctx context.Context, listID, taskID string) error {
	return a.client.do(ctx, "delete task", http.MethodDelete, "/api/lists/"+listID+"/tasks/"+taskID, nil, nil)
}

// Reorder applies a complete order batch and returns the canonical
// copies of every affected task.
func (a *TaskAPI) Reorder(ctx context.Context, listID string, orders []domain.OrderPair) ([]*domain.Task, error) {
	var payload tasksEnvelope
	err := a.client.do(ctx, "reorder tasks", http.MethodPut, "/api/lists/"+listID+"/tasks/order", reorderRequest{Orders: orders}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Tasks, nil
}
