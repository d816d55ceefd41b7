package task

import (
	"context"
	"strings"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Add, list, update, complete and delete tasks.

Task ids can be given in full, as the first characters shown by
'task list', or as the id used in the dataset file.`,
	Aliases: []string{"tasks"},
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(toggleCmd)
	Cmd.AddCommand(deleteCmd)
}

// parseDeps resolves a comma separated list of task ids.
func parseDeps(ctx context.Context, app *cli.App, s string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := cli.ResolveTaskID(ctx, app, part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
