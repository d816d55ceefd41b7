package task

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:     "show [id]",
	Short:   "Show a task with its prerequisites and dependents",
	Aliases: []string{"get"},
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
		result, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{TaskID: id})
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}
		if showJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), result)
		}

		p := cli.NewPrinter(cmd)
		if !result.Found {
			p.Printf("Task not found: %s\n", args[0])
			return nil
		}

		d := result.Detail
		t := d.Task
		p.Printf("%s %s %s%s\n", cli.StatusIcon(t.Status), t.Title, cli.PriorityBadge(t.Priority), cli.DueMarker(t))
		p.Printf("  id:        %s\n", t.ID)
		p.Printf("  status:    %s\n", t.Status)
		p.Printf("  priority:  %s\n", t.Priority)
		if t.Deadline != "" {
			p.Printf("  deadline:  %s\n", p.Date(t.Deadline))
		}
		p.Printf("  created:   %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
		if t.CompletedAt != nil {
			p.Printf("  completed: %s\n", t.CompletedAt.Format("2006-01-02 15:04"))
		}
		if t.Description != "" {
			p.Printf("\n  %s\n", t.Description)
		}

		switch {
		case d.Blocked:
			p.Println("\n  Blocked by unfinished prerequisites.")
		case d.Ready && len(d.Prerequisites) > 0:
			p.Println("\n  All prerequisites done, ready to start.")
		}

		p.Section(fmt.Sprintf("Prerequisites (%d)", len(d.Prerequisites)))
		p.Tasks(d.Prerequisites, "None.")
		p.Section(fmt.Sprintf("Dependents (%d)", len(d.Dependents)))
		p.Tasks(d.Dependents, "None.")
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
}
