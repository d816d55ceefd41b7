package settings

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
	"github.com/spf13/cobra"
)

var settingsJSON bool

// Cmd is the settings command group.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage profile, preferences and notification settings",
	Long: `Show and change user settings.

Settings are stored in the TOML file named by TASKFLOW_SETTINGS_PATH
(default ~/.taskflow/settings.toml). Set it to "-" to keep settings in
memory only.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		s, err := app.SettingsService.Get(cmd.Context())
		if err != nil {
			return err
		}
		if settingsJSON {
			return cli.WriteJSON(cmd.OutOrStdout(), s)
		}

		out := cmd.OutOrStdout()
		section := ""
		for _, key := range domain.Keys() {
			group, name, _ := strings.Cut(key, ".")
			if group != section {
				if section != "" {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "[%s]\n", group)
				section = group
			}
			value, err := s.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %-18s %s\n", name, value)
		}
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		s, err := app.SettingsService.Get(cmd.Context())
		if err != nil {
			return err
		}
		value, err := s.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Keys:

  ` + strings.Join(domain.Keys(), "\n  ") + `

Examples:
  taskflow settings set preferences.week_start monday
  taskflow settings set preferences.timezone Europe/Berlin
  taskflow settings set notifications.overdue false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		s, err := app.SettingsService.Set(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		value, _ := s.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		if _, err := app.SettingsService.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&settingsJSON, "json", false, "output as JSON")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(resetCmd)
}
