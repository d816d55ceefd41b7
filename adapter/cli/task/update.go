package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateStatus      string
	updateDeadline    string
	updateDeps        string
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a task",
	Long: `Change the fields given as flags and leave the rest untouched.

An empty --deadline clears the deadline and an empty --deps removes
every prerequisite. Changing the status to or from completed sets or
clears the completion time.

Examples:
  taskflow task update 3f2a9c1e --priority high
  taskflow task update 3f2a9c1e --status in-progress --deadline 2025-02-01
  taskflow task update 3f2a9c1e --deadline ""`,
	Aliases: []string{"edit"},
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

		update := commands.UpdateTaskCommand{TaskID: id}
		flags := cmd.Flags()
		if flags.Changed("title") {
			update.Title = &updateTitle
		}
		if flags.Changed("description") {
			update.Description = &updateDescription
		}
		if flags.Changed("priority") {
			update.Priority = &updatePriority
		}
		if flags.Changed("status") {
			update.Status = &updateStatus
		}
		if flags.Changed("deadline") {
			update.Deadline = &updateDeadline
		}
		if flags.Changed("deps") {
			deps, err := parseDeps(ctx, app, updateDeps)
			if err != nil {
				return err
			}
			update.Dependencies = &deps
		}

		result, err := app.UpdateTaskHandler.Handle(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		p := cli.NewPrinter(cmd)
		if !result.Found {
			p.Printf("Task not found: %s\n", args[0])
			return nil
		}
		p.Printf("Task updated: %s\n", result.Task.ID)
		p.Task(*result.Task)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority (low, medium, high)")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "new status (pending, in-progress, completed)")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "new deadline (YYYY-MM-DD, empty clears)")
	updateCmd.Flags().StringVar(&updateDeps, "deps", "", "comma separated prerequisite ids (empty clears)")
}
