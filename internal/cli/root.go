// Package cli provides the command-line interface for taskdeck.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupLists = "lists"
	groupTasks = "tasks"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for taskdeck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "Task list client with optimistic mutations and undo",
		Long: `taskdeck is a client for a remote task list service.

Every mutation applies locally first and reconciles with the server
response, so the interface stays responsive even when the API is slow.
Failed mutations roll back to the exact prior state.

Run without a subcommand to open the interactive TUI, which adds
undo/redo on top of the one-shot commands.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupLists, Title: "List Management:"},
		&cobra.Group{ID: groupTasks, Title: "Task Management:"},
	)

	listsCmd := newListsCommand(c)
	listsCmd.GroupID = groupLists

	tasksCmd := newTasksCommand(c)
	tasksCmd.GroupID = groupTasks

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupLists

	root.AddCommand(
		listsCmd,
		tasksCmd,
		exportCmd,
		newTUICommand(c),
	)

	return root
}

// launchTUI starts the interactive interface.
func launchTUI(c *app.Container) error {
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// newTUICommand creates the tui command, an explicit alias for the
// default behavior of the bare root command.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive TUI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
