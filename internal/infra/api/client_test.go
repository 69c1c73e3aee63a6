package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "secret-token", time.Second)
	require.NoError(t, err)
	return client
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "plain host defaults to https",
			raw:  "api.taskdeck.example",
			want: "https://api.taskdeck.example",
		},
		{
			name: "explicit scheme kept",
			raw:  "http://localhost:8080",
			want: "http://localhost:8080",
		},
		{
			name: "trailing slash and query stripped",
			raw:  "https://api.taskdeck.example/?debug=1",
			want: "https://api.taskdeck.example",
		},
		{
			name:    "empty",
			raw:     "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := parseBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestTaskAPI_List(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/lists/list-1/tasks", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(tasksEnvelope{Tasks: []*domain.Task{
			{ID: "task-1", ListID: "list-1", Title: "one", Order: 1},
		}})
	})

	// Execute
	tasks, err := client.Tasks().List(context.Background(), "list-1")

	// Assert
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-1", tasks[0].ID)
	assert.Equal(t, "one", tasks[0].Title)
}

func TestTaskAPI_CreateCarriesListSideEffect(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var fields domain.TaskFields
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "Buy milk", fields.Title)

		_ = json.NewEncoder(w).Encode(taskEnvelope{
			Task: &domain.Task{ID: "task-1", ListID: "list-1", Title: fields.Title, Order: fields.Order},
			List: &domain.List{ID: "list-1", TaskCount: 1},
		})
	})

	// Execute
	res, err := client.Tasks().Create(context.Background(), "list-1", domain.TaskFields{Title: "Buy milk", Order: 1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.Task.ID)
	require.NotNil(t, res.List)
	assert.Equal(t, 1, res.List.TaskCount)
}

func TestTaskAPI_Reorder(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/lists/list-1/tasks/order", r.URL.Path)

		var req reorderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []domain.OrderPair{{ID: "task-2", Order: 1}, {ID: "task-1", Order: 2}}, req.Orders)

		_ = json.NewEncoder(w).Encode(tasksEnvelope{Tasks: []*domain.Task{
			{ID: "task-2", Order: 1},
			{ID: "task-1", Order: 2},
		}})
	})

	// Execute
	tasks, err := client.Tasks().Reorder(context.Background(), "list-1", []domain.OrderPair{
		{ID: "task-2", Order: 1},
		{ID: "task-1", Order: 2},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "task-2", tasks[0].ID)
}

func TestClient_ServerErrorBecomesRemoteError(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	// Execute
	_, err := client.Tasks().List(context.Background(), "list-1")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusServiceUnavailable, re.StatusCode)
	assert.Equal(t, "list tasks", re.Op)
}

func TestClient_TransportErrorBecomesRemoteError(t *testing.T) {
	// Setup: a server that is already gone.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client, err := NewClient(srv.URL, "", time.Second)
	require.NoError(t, err)

	// Execute
	_, err = client.Lists().List(context.Background())

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemote)

	var re *domain.RemoteError
	require.ErrorAs(t, err, &re)
	assert.Zero(t, re.StatusCode, "transport failures carry no status")
}

func TestClient_MissingEntityBecomesRemoteError(t *testing.T) {
	// Setup: a 2xx response without the entity envelope key.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	// Execute
	_, taskErr := client.Tasks().Create(context.Background(), "list-1", domain.TaskFields{Title: "a", Order: 1})
	_, listErr := client.Lists().Update(context.Background(), "list-1", domain.ListPatch{})

	// Assert: both surface as remote failures, never a nil entity.
	require.Error(t, taskErr)
	assert.ErrorIs(t, taskErr, domain.ErrRemote)
	assert.ErrorContains(t, taskErr, "malformed response")

	require.Error(t, listErr)
	assert.ErrorIs(t, listErr, domain.ErrRemote)
	assert.ErrorContains(t, listErr, "malformed response")
}

func TestListAPI_Delete(t *testing.T) {
	// Setup
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	// Execute
	err := client.Lists().Delete(context.Background(), "list-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/api/lists/list-1", gotPath)
}

func TestListAPI_Update(t *testing.T) {
	// Setup
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var patch domain.ListPatch
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		require.NotNil(t, patch.IsPinned)
		assert.True(t, *patch.IsPinned)

		_ = json.NewEncoder(w).Encode(listEnvelope{
			List: &domain.List{ID: "list-1", Title: "a", IsPinned: true},
		})
	})

	// Execute
	pinned := true
	list, err := client.Lists().Update(context.Background(), "list-1", domain.ListPatch{IsPinned: &pinned})

	// Assert
	require.NoError(t, err)
	assert.True(t, list.IsPinned)
}
