package cli

import (
	"fmt"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/spf13/cobra"
)

var depsJSON bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Show dependency chains between tasks",
	Long: `Show which tasks are blocked, which are ready to start and how far
each dependency chain has progressed.

A task is blocked while any of its known prerequisites is not completed.
A pending task is ready once every known prerequisite is completed.
Prerequisites that are no longer in the store are ignored.`,
	Aliases: []string{"dependencies"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		graph, err := app.GetDependencyGraphHandler.Handle(cmd.Context(), queries.GetDependencyGraphQuery{})
		if err != nil {
			return fmt.Errorf("failed to load dependencies: %w", err)
		}
		if depsJSON {
			return WriteJSON(cmd.OutOrStdout(), graph)
		}

		p := NewPrinter(cmd)
		p.Section(fmt.Sprintf("CHAINS (%d)", len(graph.Chains)))
		if len(graph.Chains) == 0 {
			p.Println("    No task depends on another task.")
		}
		for _, c := range graph.Chains {
			state := "ready"
			if c.Blocked {
				state = "blocked"
			}
			p.Printf("%s %s %s  %d/%d prerequisites done (%.0f%%, %s)\n",
				StatusIcon(c.Task.Status), c.Task.Title, PriorityBadge(c.Task.Priority),
				c.CompletedCount, c.Total, c.Ratio*100, state)
			for _, pre := range c.Prerequisites {
				p.Printf("   <- %s %s\n", StatusIcon(pre.Status), pre.Title)
			}
		}

		p.Section(fmt.Sprintf("BLOCKED (%d)", len(graph.Blocked)))
		p.Tasks(graph.Blocked, "Nothing is blocked.")

		p.Section(fmt.Sprintf("READY (%d)", len(graph.Ready)))
		p.Tasks(graph.Ready, "No pending task is ready.")

		p.Section(fmt.Sprintf("INDEPENDENT (%d)", len(graph.Independent)))
		p.Tasks(graph.Independent, "No independent tasks.")

		p.Println()
		return nil
	},
}

func init() {
	depsCmd.Flags().BoolVar(&depsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(depsCmd)
}
