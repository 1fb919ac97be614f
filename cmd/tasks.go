package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

var tasksOutput string

// tasksCmd represents the tasks command
var tasksCmd = &cobra.Command{
	Use:   "tasks [query]",
	Short: "Print the task list",
	Long: `Print the task list in list order, or the tasks whose titles fuzzy match
query, best match first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		tasks, err := app.tasks.ListTasks(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		return writeTasks(cmd.OutOrStdout(), tasksOutput, tasks)
	},
}

func init() {
	tasksCmd.Flags().StringVarP(&tasksOutput, "output", "o", "text", "Output format: text, json, yaml or markdown")
}

// writeTasks prints tasks to out in the given format.
func writeTasks(out io.Writer, format string, tasks []domain.IndexedTask) error {
	switch strings.ToLower(format) {
	case "text", "":
		return writeTasksText(out, tasks)
	case "json":
		data := map[string]interface{}{
			"tasks": tasks,
			"count": len(tasks),
		}
		jsonData, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tasks: %w", err)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]interface{}{"tasks": tasks}); err != nil {
			return fmt.Errorf("failed to marshal tasks: %w", err)
		}
		return enc.Close()
	case "markdown", "md":
		rendered, err := renderTasksMarkdown(tasks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want text, json, yaml or markdown)", format)
	}
}

func writeTasksText(out io.Writer, tasks []domain.IndexedTask) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(out, "No tasks found.")
		return err
	}
	for _, t := range tasks {
		if _, err := fmt.Fprintf(out, "%3d  %s\n", t.Position, t.ListLine()); err != nil {
			return err
		}
	}
	return nil
}

// tasksMarkdown builds a markdown checklist of tasks.
func tasksMarkdown(tasks []domain.IndexedTask) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("_No tasks found._\n")
		return b.String()
	}

	done := 0
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
			done++
		}
		fmt.Fprintf(&b, "- [%s] **%s** (%d/%d pomodoros)\n", mark, t.Title, t.PomodorosCompleted, t.PomodorosExpected)
	}
	fmt.Fprintf(&b, "\n%d of %d done\n", done, len(tasks))
	return b.String()
}

// renderTasksMarkdown renders the checklist for the terminal, without
// colours when stdout is not a terminal.
func renderTasksMarkdown(tasks []domain.IndexedTask) (string, error) {
	style := "notty"
	if term.IsTerminal(os.Stdout.Fd()) {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(tasksMarkdown(tasks))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
