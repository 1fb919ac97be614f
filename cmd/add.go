package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addExpected int

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long:  `Append a new task to the end of the task list and save it.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// Combine all arguments as the title
		title := strings.Join(args, " ")

		task, err := app.tasks.AddTask(ctx, title, addExpected)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Task added: %s (#%d, %d pomodoros expected)\n",
			task.Title, task.Position, task.PomodorosExpected)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addExpected, "expected", "e", 1, "Pomodoros the task should take")
}
