package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/store"
	"github.com/spf13/cobra"
)

// newListsCommand creates the lists command group.
func newListsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage task lists",
	}

	cmd.AddCommand(
		newListsListCommand(c),
		newListsAddCommand(c),
		newListsRenameCommand(c),
		newListsPinCommand(c),
		newListsRmCommand(c),
	)

	return cmd
}

// loadedLists returns the list store with current server state.
func loadedLists(ctx context.Context, c *app.Container) (*store.ListStore, error) {
	lists := c.ListStore()
	if err := lists.Load(ctx); err != nil {
		return nil, err
	}
	return lists, nil
}

// newListsListCommand creates the lists list command.
func newListsListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all task lists",
		Long: `Display all lists for the authenticated user.

Pinned lists sort first; within each group the most recently
updated list comes first.

Output is tab-separated with columns:
  ID, PIN, TASKS, UPDATED, TITLE`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}
			printLists(cmd.OutOrStdout(), lists.Lists())
			return nil
		},
	}
}

// newListsAddCommand creates the lists add command.
func newListsAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a list",
		Long: `Create a new task list.

The title is trimmed and must be 1 to 64 characters after trimming.
A user holds at most 10 lists.

Examples:
  taskdeck lists add "Groceries"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}
			list, err := lists.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created list %s: %s\n", list.ID, list.Title)
			return nil
		},
	}
}

// newListsRenameCommand creates the lists rename command.
func newListsRenameCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}
			list, err := lists.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "List %s: %s\n", list.ID, list.Title)
			return nil
		},
	}
}

// newListsPinCommand creates the lists pin command.
func newListsPinCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle whether a list is pinned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}
			list, err := lists.TogglePin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "unpinned"
			if list.IsPinned {
				state = "pinned"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "List %s is now %s\n", list.ID, state)
			return nil
		},
	}
}

// newListsRmCommand creates the lists rm command.
func newListsRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a list",
		Long: `Delete a list and all of its tasks permanently.

Examples:
  taskdeck lists rm lst-42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}
			list, err := lists.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %s: %s\n", list.ID, list.Title)
			return nil
		},
	}
}

// printLists prints lists in TSV format.
func printLists(w io.Writer, lists []*domain.List) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tPIN\tTASKS\tUPDATED\tTITLE")

	// Rows
	for _, list := range lists {
		pin := "-"
		if list.IsPinned {
			pin = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\n",
			list.ID,
			pin,
			list.CompletedCount,
			list.TaskCount,
			list.UpdatedAt.Format(time.RFC3339),
			list.Title,
		)
	}
}
