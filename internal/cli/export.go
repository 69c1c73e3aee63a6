package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportTask is the export representation of a task.
type exportTask struct {
	CreatedAt   time.Time `json:"created_at"            yaml:"created_at"`
	ID          string    `json:"id"                    yaml:"id"`
	Title       string    `json:"title"                 yaml:"title"`
	Order       int       `json:"order"                 yaml:"order"`
	IsCompleted bool      `json:"is_completed"          yaml:"is_completed"`
}

// exportList is the export representation of a list with its tasks.
type exportList struct {
	UpdatedAt time.Time    `json:"updated_at"          yaml:"updated_at"`
	ID        string       `json:"id"                  yaml:"id"`
	Title     string       `json:"title"               yaml:"title"`
	Tasks     []exportTask `json:"tasks"               yaml:"tasks"`
	IsPinned  bool         `json:"is_pinned,omitempty" yaml:"is_pinned,omitempty"`
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		ListID string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export lists and tasks",
		Long: `Export lists and their tasks to stdout.

By default every list is exported with its tasks; --list restricts
the export to one list.

Examples:
  # Export everything as JSON
  taskdeck export

  # Export one list as YAML
  taskdeck export --list lst-42 --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Format != "json" && opts.Format != "yaml" {
				return fmt.Errorf("%w: unknown format %q", domain.ErrValidation, opts.Format)
			}

			lists, err := loadedLists(cmd.Context(), c)
			if err != nil {
				return err
			}

			var out []exportList
			for _, list := range lists.Lists() {
				if opts.ListID != "" && list.ID != opts.ListID {
					continue
				}
				el := exportList{
					ID:        list.ID,
					Title:     list.Title,
					IsPinned:  list.IsPinned,
					UpdatedAt: list.UpdatedAt,
					Tasks:     []exportTask{},
				}
				tasks, err := loadedTasks(cmd.Context(), c, list.ID)
				if err != nil {
					return err
				}
				for _, task := range tasks.Store().Tasks() {
					el.Tasks = append(el.Tasks, exportTask{
						ID:          task.ID,
						Title:       task.Title,
						Order:       task.Order,
						IsCompleted: task.IsCompleted,
						CreatedAt:   task.CreatedAt,
					})
				}
				out = append(out, el)
			}
			if opts.ListID != "" && len(out) == 0 {
				return fmt.Errorf("%w: %s", domain.ErrListNotFound, opts.ListID)
			}

			return writeExport(cmd.OutOrStdout(), opts.Format, out)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().StringVarP(&opts.ListID, "list", "l", "", "Export only this list")

	return cmd
}

func writeExport(w io.Writer, format string, lists []exportList) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(lists)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(lists)
}
