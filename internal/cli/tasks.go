package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/shwilliamson/taskdeck/internal/history"
	"github.com/spf13/cobra"
)

// newTasksCommand creates the tasks command group.
func newTasksCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks in a list",
	}

	cmd.AddCommand(
		newTasksListCommand(c),
		newTasksAddCommand(c),
		newTasksDoneCommand(c),
		newTasksEditCommand(c),
		newTasksRmCommand(c),
		newTasksMoveCommand(c),
	)

	return cmd
}

// loadedTasks builds the adapter for one list scope and loads the
// current tasks, since a one-shot command starts with an empty store.
func loadedTasks(ctx context.Context, c *app.Container, listID string) (*history.Tasks, error) {
	if listID == "" {
		return nil, fmt.Errorf("required flag \"list\" not set")
	}
	tasks := c.PlainTasks(listID)
	if err := tasks.Store().Load(ctx); err != nil {
		return nil, err
	}
	return tasks, nil
}

// newTasksListCommand creates the tasks list command.
func newTasksListCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a list",
		Long: `Display the tasks of one list in order.

Output is tab-separated with columns:
  ORDER, ID, DONE, TITLE

Examples:
  taskdeck tasks list --list lst-42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			all := tasks.Store().Tasks()
			if c.Config.UI.CompletedLast {
				all = completedLast(all)
			}
			printTasks(cmd.OutOrStdout(), all)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// completedLast partitions tasks so pending ones print first, keeping
// relative order within each group.
func completedLast(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			out = append(out, t)
		}
	}
	for _, t := range tasks {
		if t.IsCompleted {
			out = append(out, t)
		}
	}
	return out
}

// newTasksAddCommand creates the tasks add command.
func newTasksAddCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a list",
		Long: `Add a task at the end of a list.

The title is trimmed and must be 1 to 64 characters after trimming.
A list holds at most 25 tasks.

Examples:
  taskdeck tasks add --list lst-42 "Buy milk"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			task, err := tasks.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// newTasksDoneCommand creates the tasks done command.
func newTasksDoneCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle task completion",
		Long: `Toggle the completion state of a task.

A pending task becomes completed and a completed task becomes
pending again.

Examples:
  taskdeck tasks done --list lst-42 task-7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			task, err := tasks.ToggleComplete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "pending"
			if task.IsCompleted {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", task.ID, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// newTasksEditCommand creates the tasks edit command.
func newTasksEditCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Edit a task title",
		Long: `Replace the title of a task.

Setting the current title again is a no-op and does not contact
the server.

Examples:
  taskdeck tasks edit --list lst-42 task-7 "Buy oat milk"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			task, err := tasks.UpdateTitle(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// newTasksRmCommand creates the tasks rm command.
func newTasksRmCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task permanently.

Examples:
  taskdeck tasks rm --list lst-42 task-7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			task, err := tasks.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// newTasksMoveCommand creates the tasks move command.
func newTasksMoveCommand(c *app.Container) *cobra.Command {
	var listID string

	cmd := &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move a task to a position",
		Long: `Move a task to a 1-based position within its list.

The remaining tasks shift to make room; the command sends the full
order assignment for the list in one batch.

Examples:
  # Move task-7 to the top
  taskdeck tasks move --list lst-42 task-7 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil || position < 1 {
				return fmt.Errorf("%w: position must be a positive integer", domain.ErrValidation)
			}
			tasks, err := loadedTasks(cmd.Context(), c, listID)
			if err != nil {
				return err
			}
			orders, err := moveOrders(tasks.Store().Tasks(), args[0], position)
			if err != nil {
				return err
			}
			if _, err := tasks.Reorder(cmd.Context(), orders); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks.Store().Tasks())
			return nil
		},
	}

	cmd.Flags().StringVarP(&listID, "list", "l", "", "List ID (required)")

	return cmd
}

// moveOrders builds the full order assignment that places the given
// task at a 1-based position, shifting the rest while keeping their
// relative order. The input slice is already sorted by order.
func moveOrders(tasks []*domain.Task, taskID string, position int) ([]domain.OrderPair, error) {
	idx := -1
	for i, t := range tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if position > len(tasks) {
		position = len(tasks)
	}

	moved := tasks[idx]
	rest := make([]*domain.Task, 0, len(tasks)-1)
	rest = append(rest, tasks[:idx]...)
	rest = append(rest, tasks[idx+1:]...)

	reordered := make([]*domain.Task, 0, len(tasks))
	reordered = append(reordered, rest[:position-1]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[position-1:]...)

	orders := make([]domain.OrderPair, len(reordered))
	for i, t := range reordered {
		orders[i] = domain.OrderPair{ID: t.ID, Order: i + 1}
	}
	return orders, nil
}

// printTasks prints tasks in TSV format.
func printTasks(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ORDER\tID\tDONE\tTITLE")

	// Rows
	for _, task := range tasks {
		done := "-"
		if task.IsCompleted {
			done = "x"
		}
		title := task.Title
		if task.IsPending() {
			title += " (saving...)"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			task.Order,
			task.ID,
			done,
			title,
		)
	}
}
