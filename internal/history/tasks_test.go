package history

import (
	"context"
	"testing"
	"time"

	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/infra/logging"
	"github.com/shwilliamson/taskdeck/internal/store"
	"github.com/shwilliamson/taskdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasks_RecordsOnlyOnSuccess(t *testing.T) {
	// Setup
	tasks, _, log, remote := newTestScope(t, "one")
	remote.FailNext = errBoom

	// Execute: the mutation fails and rolls back.
	_, err := tasks.ToggleComplete(context.Background(), "task-1")

	// Assert: a rolled-back mutation leaves nothing to undo.
	require.ErrorIs(t, err, errBoom)
	assert.False(t, log.CanUndo())

	// The next successful mutation records normally.
	_, err = tasks.ToggleComplete(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, log.CanUndo())
}

func TestTasks_ValidationFailureRecordsNothing(t *testing.T) {
	tasks, _, log, _ := newTestScope(t)

	_, err := tasks.Create(context.Background(), "   ")

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, log.CanUndo())
}

func TestTasks_NoOpTitleEditRecordsNothing(t *testing.T) {
	// Setup
	tasks, _, log, _ := newTestScope(t, "same")

	// Execute
	task, err := tasks.UpdateTitle(context.Background(), "task-1", " same ")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "same", task.Title)
	assert.False(t, log.CanUndo(), "a no-op edit has no change to invert")
}

func TestTasks_NilLogDisablesRecording(t *testing.T) {
	// Setup
	remote := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}
	s := store.NewTaskStore("list-1", remote, clock, logging.Discard())
	tasks := NewTasks(s, nil, clock)

	// Execute: every operation still works without a log.
	created, err := tasks.Create(context.Background(), "one")
	require.NoError(t, err)
	_, err = tasks.ToggleComplete(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = tasks.UpdateTitle(context.Background(), created.ID, "renamed")
	require.NoError(t, err)
	_, err = tasks.Reorder(context.Background(), []domain.OrderPair{{ID: created.ID, Order: 1}})
	require.NoError(t, err)
	_, err = tasks.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	// Assert
	assert.Nil(t, tasks.Log())
	assert.Equal(t, 0, s.Len())
}

func TestTasks_DeleteRecordsCaptureAndRecreate(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "one")

	// Execute
	captured, err := tasks.Delete(context.Background(), "task-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "one", captured.Title)
	require.True(t, log.CanUndo())

	// The recorded action can rebuild the task from its capture alone.
	require.NoError(t, log.Undo(context.Background()))
	got := s.Tasks()
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Title)
}

func TestTasks_ReorderRecordsPriorAssignment(t *testing.T) {
	// Setup
	tasks, s, log, _ := newTestScope(t, "one", "two")

	// Execute
	_, err := tasks.Reorder(context.Background(), []domain.OrderPair{
		{ID: "task-1", Order: 2},
		{ID: "task-2", Order: 1},
	})

	// Assert
	require.NoError(t, err)
	require.NoError(t, log.Undo(context.Background()))
	assert.Equal(t, []string{"one", "two"}, titles(s.Tasks()))
}
