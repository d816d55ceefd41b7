package cli

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/spf13/cobra"
)

var dashboardJSON bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the task dashboard",
	Long: `Display a summary of your tasks:
- Totals, overdue count and completion rate
- Tasks due today
- Overdue tasks
- The most recently listed tasks

Examples:
  taskflow dashboard
  taskflow dashboard --json`,
	Aliases: []string{"today", "dash"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		dash, err := app.GetDashboardHandler.Handle(cmd.Context(), queries.GetDashboardQuery{})
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}
		if dashboardJSON {
			return WriteJSON(cmd.OutOrStdout(), dash)
		}

		p := NewPrinter(cmd)
		today := value_objects.DateOf(app.Clock.Now())
		p.Printf("\n  %s, %s\n", today.Weekday(), p.Settings().FormatDate(today))

		s := dash.Stats
		p.Section("SUMMARY")
		p.Printf("    Total: %d   Completed: %d   Pending: %d\n", s.Total, s.Completed, s.Pending)
		p.Printf("    Overdue: %d   Due today: %d\n", s.Overdue, s.DueToday)
		p.Printf("    Completion: %.0f%%\n", s.CompletionRate*100)

		p.Section(fmt.Sprintf("DUE TODAY (%d)", len(dash.DueToday)))
		p.Tasks(dash.DueToday, "Nothing due today.")

		p.Section(fmt.Sprintf("OVERDUE (%d)", len(dash.Overdue)))
		p.Tasks(dash.Overdue, "No overdue tasks.")

		p.Section("RECENT")
		p.Tasks(dash.Recent, "No tasks yet. Use 'taskflow task add' to create one.")

		p.Println()
		return nil
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(dashboardCmd)
}
