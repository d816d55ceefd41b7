package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var (
	listSearch   string
	listFilter   string
	listPriority string
	listSort     string
	listLimit    int
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional search, filtering and sorting.

Filter Options:
  --filter      all, pending, completed or overdue
  --priority    low, medium or high
  --search      text to find in titles and descriptions

Sort Options:
  --sort        created, deadline, priority or title (default: store order)

Examples:
  taskflow task list
  taskflow task list --filter overdue
  taskflow task list -q report --priority high
  taskflow task list --sort deadline --limit 5`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Search:   listSearch,
			Filter:   listFilter,
			Priority: listPriority,
			Sort:     listSort,
			Limit:    listLimit,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		if listJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), result)
		}

		p := cli.NewPrinter(cmd)
		for _, f := range queries.Filters() {
			p.Printf("%s: %d  ", f, result.Counts[f])
		}
		p.Println()

		if len(result.Tasks) == 0 {
			p.Println("No tasks found.")
			return nil
		}

		p.Section(fmt.Sprintf("Tasks (%d of %d)", len(result.Tasks), result.Total))
		for _, t := range result.Tasks {
			p.Task(t)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "search titles and descriptions")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "filter (all, pending, completed, overdue)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by (created, deadline, priority, title)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max number of tasks to show (0 = no limit)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}
