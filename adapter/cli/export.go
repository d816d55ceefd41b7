package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as a JSON or YAML dataset or an iCalendar feed",
	Long: `Export every task in the store.

The json and yaml formats write a dataset that can be loaded again with
TASKFLOW_DATASET_PATH. The ics format writes one all-day event per
task deadline for import into calendar apps.

Examples:
  taskflow export                          # JSON to stdout
  taskflow export --format yaml -o tasks.yaml
  taskflow export --format ics -o tasks.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		toFile := exportOutput != "" && exportOutput != "-"
		if toFile {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := app.ExportService.Export(cmd.Context(), out, exportFormat); err != nil {
			return fmt.Errorf("failed to export tasks: %w", err)
		}
		if toFile {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported tasks to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, yaml, ics)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
