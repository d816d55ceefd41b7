package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a task",
	Long:    `Delete a task. Tasks that depended on it keep the id, which is ignored from then on.`,
	Aliases: []string{"rm", "remove"},
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
		result, err := app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: id})
		if err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		if !result.Found {
			fmt.Fprintf(cmd.OutOrStdout(), "Task not found: %s\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", id)
		return nil
	},
}
