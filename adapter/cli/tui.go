package cli

import (
	"github.com/felixgeelhaar/taskflow/adapter/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and update tasks in an interactive terminal view",
	Long: `Open a full screen view with dashboard, task list, calendar,
dependency and notification tabs. Changes last for the session.

Press ? inside the view for key bindings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), tui.Handlers{
			Dashboard:     app.GetDashboardHandler,
			Tasks:         app.ListTasksHandler,
			Calendar:      app.GetCalendarHandler,
			Dependencies:  app.GetDependencyGraphHandler,
			Notifications: app.ListNotificationsHandler,
			Toggle:        app.ToggleCompleteHandler,
			Notify:        app.NotificationHandler,
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
