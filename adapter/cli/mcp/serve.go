package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/taskflow/internal/mcp"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/spf13/cobra"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP server over HTTP exposing task tools, resources and
prompts. The server keeps one in-memory store for its lifetime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.MCPAddr = addr
		}

		logger := newServerLogger(cmd.ErrOrStderr(), cfg)

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		err = mcpinternal.Serve(ctx, cfg, cli.NewApp(container), logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides MCP_ADDR)")
}

func newServerLogger(out io.Writer, cfg *config.Config) *slog.Logger {
	logCfg := observability.DefaultLogConfig()
	logCfg.Output = out
	logCfg.ServiceName = "taskflow-mcp"
	logCfg.ServiceVersion = cli.Version
	logCfg.Level = cfg.LogLevel
	if cfg.IsDevelopment() {
		logCfg.Level = "debug"
	}
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	} else if cfg.IsProduction() {
		logCfg.Format = observability.LogFormatJSON
	}
	return observability.NewLogger(logCfg)
}
