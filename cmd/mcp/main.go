// Command mcp runs the taskflow MCP server on its own, without the CLI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/taskflow/internal/mcp"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.LoggerFromEnv()
	if err := run(ctx, logger); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	err = mcpinternal.Serve(ctx, cfg, cli.NewApp(container), logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
