// Package clitest runs CLI commands against a seeded in-memory container.
package clitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/internal/app"
	sharedDomain "github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// Now is the instant the test clock is frozen at. The seed dataset is
// rebased so that its anchor date falls on this day.
var Now = time.Date(2025, 1, 25, 9, 0, 0, 0, time.UTC)

// Setup wires a container, installs it as the global CLI app and removes
// it again when the test ends.
func Setup(t testing.TB, seed bool) *app.Container {
	t.Helper()

	cfg := &config.Config{
		AppEnv:       "test",
		SettingsPath: "-",
		SeedEnabled:  seed,
		SeedRebase:   true,
	}
	c, err := app.NewContainer(context.Background(), cfg, observability.DiscardLogger(),
		app.WithClock(sharedDomain.FixedClock{At: Now}))
	require.NoError(t, err)

	cli.SetApp(cli.NewApp(c))
	t.Cleanup(func() {
		cli.SetApp(nil)
		c.Close()
	})
	return c
}

// Execute runs cmd with args after resetting its flags and returns what
// it wrote to stdout and stderr.
func Execute(t testing.TB, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cli.ResetFlags(cmd)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
