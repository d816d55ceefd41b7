package mcp

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/felixgeelhaar/mcp-go/middleware"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/adapter/cli/clitest"
)

func TestNewServer_RegistersTools(t *testing.T) {
	clitest.Setup(t, true)

	srv, err := NewServer(cli.GetApp(), "test", nil)
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)
	assert.NotEmpty(t, tools)
}

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, "test", nil)
	assert.Error(t, err)
}

func TestServe_RequiresConfig(t *testing.T) {
	err := Serve(context.Background(), nil, &cli.App{}, nil)
	assert.Error(t, err)
}

func TestMCPLogger_ForwardsFields(t *testing.T) {
	var buf bytes.Buffer
	l := mcpLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	l.Info("request", middleware.Field{Key: "method", Value: "tools/list"})
	l.Debug("detail")

	assert.Contains(t, buf.String(), "msg=request")
	assert.Contains(t, buf.String(), "method=tools/list")
	assert.Contains(t, buf.String(), "msg=detail")
}
