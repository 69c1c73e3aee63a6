package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/infra/logging"
	"github.com/shwilliamson/taskdeck/internal/store"
	"github.com/shwilliamson/taskdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// newTestScope builds a task scope with recording enabled and the
// given titles already confirmed server-side.
func newTestScope(t *testing.T, titles ...string) (*Tasks, *store.TaskStore, *Log, *testutil.MockTaskService) {
	t.Helper()
	remote := testutil.NewMockTaskService()
	for i, title := range titles {
		remote.Seed("list-1", &domain.Task{
			ID:        fmt.Sprintf("task-%d", i+1),
			Title:     title,
			Order:     i + 1,
			CreatedAt: remote.Now,
			UpdatedAt: remote.Now,
		})
	}
	remote.NextIDN = len(titles) + 1

	clock := &testutil.MockClock{NowTime: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	s := store.NewTaskStore("list-1", remote, clock, logging.Discard())
	require.NoError(t, s.Load(context.Background()))
	log := NewLog(s, logging.Discard())
	return NewTasks(s, log, clock), s, log, remote
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestLog_UndoRedoToggle(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "one")
	_, err := tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	require.True(t, s.Get("task-1").IsCompleted)

	// Execute undo
	require.NoError(t, log.Undo(context.Background()))

	// Assert
	assert.False(t, s.Get("task-1").IsCompleted)
	assert.False(t, log.CanUndo())
	assert.True(t, log.CanRedo())

	// Execute redo
	require.NoError(t, log.Redo(context.Background()))
	assert.True(t, s.Get("task-1").IsCompleted)
	assert.True(t, log.CanUndo())
	assert.False(t, log.CanRedo())
}

func TestLog_UndoRedoEditTitle(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "before")
	_, err := tasks.UpdateTitle(context.Background(), "task-1", "after")
	require.NoError(t, err)

	// Execute / Assert
	require.NoError(t, log.Undo(context.Background()))
	assert.Equal(t, "before", s.Get("task-1").Title)

	require.NoError(t, log.Redo(context.Background()))
	assert.Equal(t, "after", s.Get("task-1").Title)
}

func TestLog_UndoRedoReorder(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "one", "two", "three")
	_, err := tasks.Reorder(context.Background(), []domain.OrderPair{
		{ID: "task-1", Order: 3},
		{ID: "task-2", Order: 2},
		{ID: "task-3", Order: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"three", "two", "one"}, titles(s.Tasks()))

	// Execute / Assert
	require.NoError(t, log.Undo(context.Background()))
	assert.Equal(t, []string{"one", "two", "three"}, titles(s.Tasks()))

	require.NoError(t, log.Redo(context.Background()))
	assert.Equal(t, []string{"three", "two", "one"}, titles(s.Tasks()))
}

func TestLog_UndoAddDeletesTask(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t)
	created, err := tasks.Create(context.Background(), "fresh")
	require.NoError(t, err)

	// Execute
	require.NoError(t, log.Undo(context.Background()))

	// Assert
	assert.Nil(t, s.Get(created.ID))
	assert.Equal(t, 0, s.Len())

	// Redo re-creates under a new server id.
	require.NoError(t, log.Redo(context.Background()))
	got := s.Tasks()
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].Title)
	assert.NotEqual(t, created.ID, got[0].ID)

	// The refreshed id keeps a further undo targeting the live task.
	require.NoError(t, log.Undo(context.Background()))
	assert.Equal(t, 0, s.Len())
}

func TestLog_UndoDeleteRecreatesAtEnd(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "one", "two", "three")
	_, err := tasks.Delete(context.Background(), "task-1")
	require.NoError(t, err)
	require.Equal(t, []string{"two", "three"}, titles(s.Tasks()))

	// Execute
	require.NoError(t, log.Undo(context.Background()))

	// Assert: recreation appends with a fresh id, the original slot is
	// not restored.
	got := s.Tasks()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"two", "three", "one"}, titles(got))
	assert.NotEqual(t, "task-1", got[2].ID)

	// Redo deletes the recreated task, not the stale original id.
	require.NoError(t, log.Redo(context.Background()))
	assert.Equal(t, []string{"two", "three"}, titles(s.Tasks()))

	// And the cycle keeps working.
	require.NoError(t, log.Undo(context.Background()))
	assert.Len(t, s.Tasks(), 3)
}

func TestLog_RecordClearsRedo(t *testing.T) {
	// Setup
	tasks, _, log, _ := newTestScope(t, "one")
	_, err := tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	require.NoError(t, log.Undo(context.Background()))
	require.True(t, log.CanRedo())

	// Execute: a new confirmed mutation diverges the history.
	_, err = tasks.UpdateTitle(context.Background(), "task-1", "renamed")
	require.NoError(t, err)

	// Assert
	assert.False(t, log.CanRedo(), "diverged future must be unreachable")
	assert.True(t, log.CanUndo())
}

func TestLog_UndoFailureLeavesStacksUntouched(t *testing.T) {
	// Setup
	tasks, s, log, remote := newTestScope(t, "one")
	_, err := tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	remote.UpdateErr = errBoom

	// Execute
	err = log.Undo(context.Background())

	// Assert
	require.ErrorIs(t, err, errBoom)
	assert.True(t, log.CanUndo(), "failed undo stays available for retry")
	assert.False(t, log.CanRedo())
	assert.True(t, s.Get("task-1").IsCompleted, "store rolled back to post-mutation state")

	// Retry succeeds once the server recovers.
	remote.UpdateErr = nil
	require.NoError(t, log.Undo(context.Background()))
	assert.False(t, s.Get("task-1").IsCompleted)
}

func TestLog_RedoFailureLeavesStacksUntouched(t *testing.T) {
	// Setup
	tasks, _, log, remote := newTestScope(t, "one")
	_, err := tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	require.NoError(t, log.Undo(context.Background()))
	remote.UpdateErr = errBoom

	// Execute
	err = log.Redo(context.Background())

	// Assert
	require.ErrorIs(t, err, errBoom)
	assert.True(t, log.CanRedo(), "failed redo stays available for retry")
	assert.False(t, log.CanUndo())
}

func TestLog_EmptyStacksAreNoOps(t *testing.T) {
	_, _, log, remote := newTestScope(t)

	assert.NoError(t, log.Undo(context.Background()))
	assert.NoError(t, log.Redo(context.Background()))
	assert.Equal(t, []string{"list"}, remote.Calls, "nothing dispatched beyond the initial load")
}

func TestLog_Clear(t *testing.T) {
	// Setup
	tasks, _, log, _ := newTestScope(t, "one")
	_, err := tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	require.NoError(t, log.Undo(context.Background()))

	// Execute
	log.Clear()

	// Assert
	assert.False(t, log.CanUndo())
	assert.False(t, log.CanRedo())
}

func TestLog_StackBalanceAcrossKinds(t *testing.T) {
	// Setup: a sequence of confirmed mutations whose inverses all
	// target stable ids.
	tasks, s, log, _ := newTestScope(t, "one", "two")
	ctx := context.Background()

	_, err := tasks.ToggleComplete(ctx, "task-1")
	require.NoError(t, err)
	_, err = tasks.UpdateTitle(ctx, "task-1", "renamed")
	require.NoError(t, err)
	_, err = tasks.Reorder(ctx, []domain.OrderPair{{ID: "task-1", Order: 2}, {ID: "task-2", Order: 1}})
	require.NoError(t, err)
	_, err = tasks.ToggleComplete(ctx, "task-2")
	require.NoError(t, err)

	// Execute: unwind everything, then replay everything.
	for i := 0; i < 4; i++ {
		require.NoError(t, log.Undo(ctx), "undo step %d", i)
	}
	assert.False(t, log.CanUndo())
	assert.Equal(t, []string{"one", "two"}, titles(s.Tasks()))
	assert.False(t, s.Get("task-1").IsCompleted)
	assert.False(t, s.Get("task-2").IsCompleted)

	for i := 0; i < 4; i++ {
		require.NoError(t, log.Redo(ctx), "redo step %d", i)
	}
	assert.False(t, log.CanRedo())
	assert.True(t, log.CanUndo())
	assert.Equal(t, []string{"two", "renamed"}, titles(s.Tasks()))
	assert.True(t, s.Get("task-1").IsCompleted)
	assert.True(t, s.Get("task-2").IsCompleted)
}
