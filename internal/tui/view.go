package tui

import (
	"fmt"
	"strings"

	"github.com/shwilliamson/taskdeck/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	if m.screen == ScreenTasks {
		b.WriteString(m.viewTasks())
	} else {
		b.WriteString(m.viewLists())
	}

	b.WriteString(m.viewStatus())

	if m.mode == ModeInput {
		b.WriteString("\n")
		b.WriteString(m.style.Input.Render(m.input.View()))
	}
	if m.mode == ModeConfirmDelete {
		b.WriteString("\n")
		b.WriteString(m.style.Error.Render("Delete? ") + m.style.Help.Render("y confirm / n cancel"))
	}

	b.WriteString("\n")
	b.WriteString(m.viewHelp())

	return b.String()
}

// viewLists renders the list collection.
func (m *Model) viewLists() string {
	var b strings.Builder
	b.WriteString(m.style.Title.Render("Lists"))
	b.WriteString("\n")

	lists := m.lists.Lists()
	if len(lists) == 0 && !m.busy {
		b.WriteString(m.style.Help.Render("No lists. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, list := range lists {
		pin := "  "
		if list.IsPinned {
			pin = m.style.Pinned.Render("* ")
		}
		line := fmt.Sprintf("%s%s (%d/%d)", pin, list.Title, list.CompletedCount, list.TaskCount)
		if domain.IsTempID(list.ID) {
			line += " " + m.style.Pending.Render("saving...")
		}
		if i == m.listCursor {
			b.WriteString(m.style.Selected.Render(line))
		} else {
			b.WriteString(m.style.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// viewTasks renders the open task scope.
func (m *Model) viewTasks() string {
	var b strings.Builder

	title := "Tasks"
	if list := m.lists.Get(m.tasks.Store().ListID()); list != nil {
		title = list.Title
	}
	b.WriteString(m.style.Title.Render(title))
	b.WriteString("\n")

	tasks := m.tasks.Store().Tasks()
	if len(tasks) == 0 && !m.busy {
		b.WriteString(m.style.Help.Render("No tasks. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, task := range tasks {
		check := "[ ]"
		if task.IsCompleted {
			check = "[x]"
		}
		text := task.Title
		if task.IsCompleted {
			text = m.style.Completed.Render(text)
		}
		line := fmt.Sprintf("%s %s", check, text)
		if task.IsPending() {
			line += " " + m.style.Pending.Render("saving...")
		}
		if i == m.taskCursor {
			b.WriteString(m.style.Selected.Render(line))
		} else {
			b.WriteString(m.style.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// viewStatus renders the loading, notice, and error line.
func (m *Model) viewStatus() string {
	if m.err != nil {
		return "\n" + m.style.Error.Render("Error: "+m.err.Error())
	}
	if m.busy {
		return "\n" + m.style.Loading.Render("syncing...")
	}
	if m.notice != "" {
		return "\n" + m.style.Notice.Render(m.notice)
	}
	return ""
}

// viewHelp renders the key hints for the current screen.
func (m *Model) viewHelp() string {
	if m.screen == ScreenTasks {
		hints := "j/k nav  a add  space toggle  e edit  d delete  J/K move"
		if log := m.tasks.Log(); log != nil {
			if log.CanUndo() {
				hints += "  u undo"
			}
			if log.CanRedo() {
				hints += "  r redo"
			}
		}
		hints += "  R refresh  esc back  q quit"
		return m.style.Help.Render(hints)
	}
	return m.style.Help.Render("j/k nav  enter open  a add  e rename  p pin  d delete  R refresh  q quit")
}
