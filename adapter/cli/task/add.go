package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addPriority    string
	addStatus      string
	addDeadline    string
	addDeps        string
	addJSON        bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a task with a title and optional properties.

Without --priority the default priority from settings is used.

Examples:
  taskflow task add "Complete project report"
  taskflow task add "Review PR" -p high --deadline 2025-02-01
  taskflow task add "Deploy" --deps 3f2a9c1e,release-notes`,
	Aliases: []string{"create", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		deps, err := parseDeps(ctx, app, addDeps)
		if err != nil {
			return err
		}

		created, err := app.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
			Title:        args[0],
			Description:  addDescription,
			Priority:     addPriority,
			Status:       addStatus,
			Deadline:     addDeadline,
			Dependencies: deps,
		})
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}
		if addJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), created)
		}

		p := cli.NewPrinter(cmd)
		p.Printf("Task added: %s\n", created.ID)
		p.Printf("  title: %s\n", created.Title)
		p.Printf("  priority: %s\n", created.Priority)
		p.Printf("  status: %s\n", created.Status)
		if created.Deadline != "" {
			p.Printf("  deadline: %s\n", p.Date(created.Deadline))
		}
		if len(created.Dependencies) > 0 {
			p.Printf("  depends on: %d task(s)\n", len(created.Dependencies))
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "status (pending, in-progress, completed)")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addDeps, "deps", "", "comma separated ids of prerequisite tasks")
	addCmd.Flags().BoolVar(&addJSON, "json", false, "output as JSON")
}
