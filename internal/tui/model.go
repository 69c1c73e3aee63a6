// Package tui provides the interactive terminal interface for taskdeck.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/history"
	"github.com/shwilliamson/taskdeck/internal/store"
)

// Screen represents which collection is on screen.
type Screen int

const (
	ScreenLists Screen = iota
	ScreenTasks
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeConfirmDelete
)

// inputTarget distinguishes what the text input is collecting.
type inputTarget int

const (
	inputAddTask inputTarget = iota
	inputEditTask
	inputAddList
	inputRenameList
)

// Model is the TUI model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	container *app.Container
	lists     *store.ListStore
	tasks     *history.Tasks

	// State
	err    error
	notice string
	editID string

	// Components
	keys  KeyMap
	style Styles
	input textinput.Model

	// Numeric state
	listCursor int
	taskCursor int
	width      int
	height     int
	screen     Screen
	mode       Mode
	target     inputTarget

	// Boolean state
	busy bool
}

// New creates the TUI model.
func New(c *app.Container) *Model {
	in := textinput.New()
	in.CharLimit = domain.MaxTitleLen

	return &Model{
		container: c,
		lists:     c.ListStore(),
		keys:      DefaultKeyMap(),
		style:     DefaultStyles(),
		input:     in,
		screen:    ScreenLists,
		mode:      ModeNormal,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.busy = true
	return m.loadLists()
}

// loadLists refreshes the list collection from the server.
func (m *Model) loadLists() tea.Cmd {
	return func() tea.Msg {
		err := m.lists.Load(context.Background())
		return MsgListsLoaded{Err: err}
	}
}

// openList builds a fresh task scope for the selected list. A fresh
// scope starts with an empty action log; history never crosses lists.
func (m *Model) openList(listID string) tea.Cmd {
	m.tasks = m.container.Tasks(listID)
	m.screen = ScreenTasks
	m.taskCursor = 0
	m.busy = true
	return m.loadTasks()
}

// loadTasks refreshes the open task scope from the server.
func (m *Model) loadTasks() tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		err := tasks.Store().Load(context.Background())
		return MsgTasksLoaded{ListID: tasks.Store().ListID(), Err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MsgListsLoaded:
		m.busy = false
		m.err = msg.Err
		m.clampCursors()
		return m, nil

	case MsgTasksLoaded:
		m.busy = false
		if m.tasks == nil || m.tasks.Store().ListID() != msg.ListID {
			// Stale load from a scope that is no longer open.
			return m, nil
		}
		m.err = msg.Err
		m.clampCursors()
		return m, nil

	case MsgMutationDone:
		m.busy = false
		m.err = msg.Err
		if msg.Err == nil {
			m.notice = msg.Op
		}
		m.clampCursors()
		return m, nil

	case MsgListMutationDone:
		m.busy = false
		m.err = msg.Err
		if msg.Err == nil {
			m.notice = msg.Op
		}
		m.clampCursors()
		return m, nil

	case MsgHistoryDone:
		m.busy = false
		m.err = msg.Err
		if msg.Err == nil {
			if msg.Redo {
				m.notice = "redone"
			} else {
				m.notice = "undone"
			}
		}
		m.clampCursors()
		return m, nil
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode { //nolint:exhaustive // ModeNormal handled in default
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirmDelete:
		return m.handleDeleteMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit

	case keyMatches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case keyMatches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case keyMatches(msg, m.keys.Refresh):
		m.busy = true
		if m.screen == ScreenTasks {
			return m, m.loadTasks()
		}
		return m, m.loadLists()

	case keyMatches(msg, m.keys.Add):
		if m.screen == ScreenTasks {
			return m.startInput(inputAddTask, "New task title...", "")
		}
		return m.startInput(inputAddList, "New list title...", "")

	case keyMatches(msg, m.keys.Delete):
		if m.screen == ScreenTasks {
			if task := m.currentTask(); task != nil && !task.IsPending() {
				m.mode = ModeConfirmDelete
			}
			return m, nil
		}
		if list := m.currentList(); list != nil && !list.IsPending() {
			m.mode = ModeConfirmDelete
		}
		return m, nil
	}

	if m.screen == ScreenTasks {
		return m.handleTaskKeys(msg)
	}
	return m.handleListKeys(msg)
}

// handleListKeys handles keys specific to the lists screen.
func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Open):
		if list := m.currentList(); list != nil && !list.IsPending() {
			return m, m.openList(list.ID)
		}
		return m, nil

	case keyMatches(msg, m.keys.Edit):
		if list := m.currentList(); list != nil && !list.IsPending() {
			return m.startInput(inputRenameList, "", list.Title)
		}
		return m, nil

	case keyMatches(msg, m.keys.Pin):
		if list := m.currentList(); list != nil && !list.IsPending() {
			m.busy = true
			return m, m.togglePin(list.ID)
		}
		return m, nil
	}

	return m, nil
}

// handleTaskKeys handles keys specific to the tasks screen.
func (m *Model) handleTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Back):
		m.screen = ScreenLists
		m.tasks = nil
		m.err = nil
		m.busy = true
		return m, m.loadLists()

	case keyMatches(msg, m.keys.Toggle):
		if task := m.currentTask(); task != nil && !task.IsPending() {
			m.busy = true
			return m, m.toggleComplete(task.ID)
		}
		return m, nil

	case keyMatches(msg, m.keys.Edit):
		if task := m.currentTask(); task != nil && !task.IsPending() {
			return m.startInput(inputEditTask, "", task.Title)
		}
		return m, nil

	case keyMatches(msg, m.keys.MoveUp):
		return m.moveTask(-1)

	case keyMatches(msg, m.keys.MoveDown):
		return m.moveTask(1)

	case keyMatches(msg, m.keys.Undo):
		log := m.tasks.Log()
		if log != nil && log.CanUndo() {
			m.busy = true
			return m, m.undo()
		}
		return m, nil

	case keyMatches(msg, m.keys.Redo):
		log := m.tasks.Log()
		if log != nil && log.CanRedo() {
			m.busy = true
			return m, m.redo()
		}
		return m, nil
	}

	return m, nil
}

// handleInputMode handles keys while the text input is focused.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		m.mode = ModeNormal
		m.input.Reset()
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		m.busy = true
		switch m.target {
		case inputAddTask:
			return m, m.createTask(value)
		case inputEditTask:
			return m, m.editTask(m.editID, value)
		case inputAddList:
			return m, m.createList(value)
		case inputRenameList:
			return m, m.renameList(m.editID, value)
		}
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDeleteMode handles keys in delete confirmation mode.
func (m *Model) handleDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		if m.screen == ScreenTasks {
			if task := m.currentTask(); task != nil && !task.IsPending() {
				m.busy = true
				return m, m.deleteTask(task.ID)
			}
			return m, nil
		}
		if list := m.currentList(); list != nil && !list.IsPending() {
			m.busy = true
			return m, m.deleteList(list.ID)
		}
		return m, nil

	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}

// startInput switches to input mode with a target and initial value.
func (m *Model) startInput(target inputTarget, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = ModeInput
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	switch target {
	case inputEditTask:
		if task := m.currentTask(); task != nil {
			m.editID = task.ID
		}
	case inputRenameList:
		if list := m.currentList(); list != nil {
			m.editID = list.ID
		}
	}
	return m, textinput.Blink
}

// Mutation commands. Each runs the blocking store call off the UI
// goroutine and reports back once the mutation settled.

func (m *Model) createTask(title string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		task, err := tasks.Create(context.Background(), title)
		return MsgMutationDone{Op: "added", Task: task, Err: err}
	}
}

func (m *Model) toggleComplete(id string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		task, err := tasks.ToggleComplete(context.Background(), id)
		return MsgMutationDone{Op: "toggled", Task: task, Err: err}
	}
}

func (m *Model) editTask(id, title string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		task, err := tasks.UpdateTitle(context.Background(), id, title)
		return MsgMutationDone{Op: "edited", Task: task, Err: err}
	}
}

func (m *Model) deleteTask(id string) tea.Cmd {
	tasks := m.tasks
	return func() tea.Msg {
		task, err := tasks.Delete(context.Background(), id)
		return MsgMutationDone{Op: "deleted", Task: task, Err: err}
	}
}

// moveTask swaps the selected task with its neighbor and sends the
// full order assignment as one batch.
func (m *Model) moveTask(delta int) (tea.Model, tea.Cmd) {
	current := m.tasks.Store().Tasks()
	target := m.taskCursor + delta
	if m.taskCursor < 0 || m.taskCursor >= len(current) || target < 0 || target >= len(current) {
		return m, nil
	}
	// The batch names every task in the scope, so it has to wait until
	// every id is server-issued.
	for _, t := range current {
		if t.IsPending() {
			return m, nil
		}
	}

	current[m.taskCursor], current[target] = current[target], current[m.taskCursor]
	orders := make([]domain.OrderPair, len(current))
	for i, t := range current {
		orders[i] = domain.OrderPair{ID: t.ID, Order: i + 1}
	}

	m.taskCursor = target
	m.busy = true
	tasks := m.tasks
	return m, func() tea.Msg {
		_, err := tasks.Reorder(context.Background(), orders)
		return MsgMutationDone{Op: "moved", Err: err}
	}
}

func (m *Model) undo() tea.Cmd {
	log := m.tasks.Log()
	return func() tea.Msg {
		err := log.Undo(context.Background())
		return MsgHistoryDone{Err: err}
	}
}

func (m *Model) redo() tea.Cmd {
	log := m.tasks.Log()
	return func() tea.Msg {
		err := log.Redo(context.Background())
		return MsgHistoryDone{Redo: true, Err: err}
	}
}

func (m *Model) createList(title string) tea.Cmd {
	lists := m.lists
	return func() tea.Msg {
		list, err := lists.Create(context.Background(), title)
		return MsgListMutationDone{Op: "added", List: list, Err: err}
	}
}

func (m *Model) renameList(id, title string) tea.Cmd {
	lists := m.lists
	return func() tea.Msg {
		list, err := lists.Rename(context.Background(), id, title)
		return MsgListMutationDone{Op: "renamed", List: list, Err: err}
	}
}

func (m *Model) togglePin(id string) tea.Cmd {
	lists := m.lists
	return func() tea.Msg {
		list, err := lists.TogglePin(context.Background(), id)
		return MsgListMutationDone{Op: "pinned", List: list, Err: err}
	}
}

func (m *Model) deleteList(id string) tea.Cmd {
	lists := m.lists
	return func() tea.Msg {
		list, err := lists.Delete(context.Background(), id)
		return MsgListMutationDone{Op: "deleted", List: list, Err: err}
	}
}

// Cursor helpers.

func (m *Model) moveCursor(delta int) {
	if m.screen == ScreenTasks {
		m.taskCursor = clamp(m.taskCursor+delta, m.tasks.Store().Len())
		return
	}
	m.listCursor = clamp(m.listCursor+delta, m.lists.Len())
}

// clampCursors keeps cursors valid after the collections changed
// underneath them.
func (m *Model) clampCursors() {
	m.listCursor = clamp(m.listCursor, m.lists.Len())
	if m.tasks != nil {
		m.taskCursor = clamp(m.taskCursor, m.tasks.Store().Len())
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// currentList returns the list under the cursor, or nil.
func (m *Model) currentList() *domain.List {
	lists := m.lists.Lists()
	if m.listCursor < 0 || m.listCursor >= len(lists) {
		return nil
	}
	return lists[m.listCursor]
}

// currentTask returns the task under the cursor, or nil.
func (m *Model) currentTask() *domain.Task {
	if m.tasks == nil {
		return nil
	}
	tasks := m.tasks.Store().Tasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	return tasks[m.taskCursor]
}

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
