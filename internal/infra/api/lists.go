package api

import (
	"context"
	"net/http"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// ListAPI implements domain.ListService against the HTTP API.
type ListAPI struct {
	client *Client
}

// Ensure ListAPI implements the port.
var _ domain.ListService = (*ListAPI)(nil)

// List retrieves all lists for the authenticated user.
func (a *ListAPI) List(ctx context.Context) ([]*domain.List, error) {
	var payload listsEnvelope
	err := a.client.do(ctx, "list lists", http.MethodGet, "/api/lists", nil, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Lists, nil
}

// Create creates a list and returns the canonical entity.
func (a *ListAPI) Create(ctx context.Context, fields domain.ListFields) (*domain.List, error) {
	var payload listEnvelope
	err := a.client.do(ctx, "create list", http.MethodPost, "/api/lists", fields, &payload)
	if err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, &domain.RemoteError{Op: "create list", Err: errMissingList}
	}
	return payload.List, nil
}

// Update applies a partial update and returns the canonical entity.
func (a *ListAPI) Update(ctx context.Context, listID string, patch domain.ListPatch) (*domain.List, error) {
	var payload listEnvelope
	err := a.client.do(ctx, "update list", http.MethodPatch, "/api/lists/"+listID, patch, &payload)
	if err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, &domain.RemoteError{Op: "update list", Err: errMissingList}
	}
	return payload.List, nil
}

// Delete removes a list and all of its tasks permanently.
func (a *ListAPI) Delete(ctx context.Context, listID string) error {
	return a.client.do(ctx, "delete list", http.MethodDelete, "/api/lists/"+listID, nil, nil)
}
