package tui

import "github.com/shwilliamson/taskdeck/internal/domain"

// Msg is the interface for all TUI messages.
// All message types implement this sealed interface.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgListsLoaded is sent when the list collection finished a refresh.
type MsgListsLoaded struct {
	Err error
}

func (MsgListsLoaded) sealed() {}

// MsgTasksLoaded is sent when a task scope finished a refresh.
type MsgTasksLoaded struct {
	Err    error
	ListID string
}

func (MsgTasksLoaded) sealed() {}

// MsgMutationDone is sent when an optimistic mutation settled, either
// reconciled or rolled back.
//
//nolint:govet // Logical field order preferred
type MsgMutationDone struct {
	Task *domain.Task
	Err  error
	Op   string
}

func (MsgMutationDone) sealed() {}

// MsgListMutationDone is sent when a list mutation settled.
//
//nolint:govet // Logical field order preferred
type MsgListMutationDone struct {
	List *domain.List
	Err  error
	Op   string
}

func (MsgListMutationDone) sealed() {}

// MsgHistoryDone is sent when an undo or redo dispatch settled. On
// failure the stacks are unchanged and the failed step stays available.
type MsgHistoryDone struct {
	Err  error
	Redo bool
}

func (MsgHistoryDone) sealed() {}
