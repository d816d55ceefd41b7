package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/adapter/cli/mcp"
	"github.com/felixgeelhaar/taskflow/adapter/cli/notification"
	cliSettings "github.com/felixgeelhaar/taskflow/adapter/cli/settings"
	"github.com/felixgeelhaar/taskflow/adapter/cli/task"
	"github.com/felixgeelhaar/taskflow/internal/app"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{AppEnv: "development", SeedEnabled: true, SeedRebase: true, SettingsPath: "-"}
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(cli.NewApp(container))

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(notification.Cmd)
	cli.AddCommand(cliSettings.Cmd)
	cli.AddCommand(mcp.Cmd)

	// Execute CLI
	cli.Execute(ctx)
}
