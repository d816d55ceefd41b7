package notification

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var (
	listUnread bool
	listJSON   bool
)

// Cmd is the notifications command group.
var Cmd = &cobra.Command{
	Use:     "notifications",
	Short:   "List and manage task notifications",
	Aliases: []string{"notification", "notes"},
	Long: `Notifications are derived from the tasks every time they are listed:
upcoming deadlines, overdue tasks, recent completions and suggestions
about blocked or ready tasks. Categories can be switched off with
'taskflow settings set notifications.<category> false'.`,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List notifications, newest first",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		result, err := app.ListNotificationsHandler.Handle(cmd.Context(), queries.ListNotificationsQuery{UnreadOnly: listUnread})
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}
		if listJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), result)
		}

		p := cli.NewPrinter(cmd)
		p.Printf("Notifications (%d, %d unread)\n", len(result.Notifications), result.Unread)
		p.Println(strings.Repeat("-", 60))
		if len(result.Notifications) == 0 {
			p.Println("No notifications.")
			return nil
		}
		for _, n := range result.Notifications {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			p.Printf("%s %s %s %s\n", marker, cli.PriorityBadge(n.Priority), n.Title, n.Timestamp.Format("Jan 2 15:04"))
			p.Printf("    %s\n", n.Message)
			p.Printf("    id: %s\n", n.ID)
		}
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		result, err := app.NotificationHandler.MarkRead(cmd.Context(), commands.MarkNotificationReadCommand{ID: args[0]})
		if err != nil {
			return err
		}
		return report(cmd, result, "marked as read")
	},
}

var readAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		result, err := app.NotificationHandler.MarkAllRead(cmd.Context(), commands.MarkAllNotificationsReadCommand{})
		if err != nil {
			return err
		}
		return report(cmd, result, "marked as read")
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss [id]",
	Short: "Hide a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		result, err := app.NotificationHandler.Dismiss(cmd.Context(), commands.DismissNotificationCommand{ID: args[0]})
		if err != nil {
			return err
		}
		return report(cmd, result, "dismissed")
	},
}

func report(cmd *cobra.Command, result *commands.NotificationResult, action string) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d notification(s) %s\n", result.Affected, action)
	return err
}

func init() {
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "show only unread notifications")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(readCmd)
	Cmd.AddCommand(readAllCmd)
	Cmd.AddCommand(dismissCmd)
}
