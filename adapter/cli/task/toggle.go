package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Complete a task, or reopen a completed one",
	Long: `Toggle completion of a task.

A pending or in-progress task becomes completed; a completed task goes
back to pending.`,
	Aliases: []string{"done", "complete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		id, err := cli.ResolveTaskID(ctx, app, args[0])
		if err != nil {
			return err
		}
		result, err := app.ToggleCompleteHandler.Handle(ctx, commands.ToggleCompleteCommand{TaskID: id})
		if err != nil {
			return fmt.Errorf("failed to toggle task: %w", err)
		}

		out := cmd.OutOrStdout()
		if !result.Found {
			fmt.Fprintf(out, "Task not found: %s\n", args[0])
			return nil
		}
		if result.Task.Status == "completed" {
			fmt.Fprintf(out, "Task completed: %s\n", result.Task.Title)
		} else {
			fmt.Fprintf(out, "Task reopened: %s\n", result.Task.Title)
		}
		return nil
	},
}
