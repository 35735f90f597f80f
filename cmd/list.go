package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	model "todo-list.com/todo-list/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print stored tasks, newest first, optionally filtered by a search query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.shutdown()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		tasks, err := a.taskService.Search(cmd.Context(), query)
		if err != nil {
			return err
		}

		return printTasks(cmd.OutOrStdout(), tasks)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func printTasks(w io.Writer, tasks []model.Task) error {
	for _, task := range tasks {
		if _, err := fmt.Fprintln(w, formatTask(task)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d task(s)\n", len(tasks))
	return err
}

// formatTask renders one line: status, id, date (dd/MM/yy), title and
// description.
func formatTask(task model.Task) string {
	var b strings.Builder

	if task.IsCompleted {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}

	fmt.Fprintf(&b, "%6d  ", task.ID)

	if task.CreationDate != nil {
		b.WriteString(task.CreationDate.Format("02/01/06"))
	} else {
		b.WriteString("--/--/--")
	}

	b.WriteString("  ")
	b.WriteString(task.Title)

	if task.DescriptionText != nil && *task.DescriptionText != "" {
		b.WriteString(" - ")
		b.WriteString(*task.DescriptionText)
	}

	return b.String()
}
