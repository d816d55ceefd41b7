package mcp

import (
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/adapter/cli"
)

// ToolDependencies provides handlers for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	h := handlers{app: deps.App}
	registerTaskTools(srv, h)
	registerViewTools(srv, h)
	registerNotificationTools(srv, h)
	registerSettingsTools(srv, h)
	return nil
}

// handlers implements the tool and resource handlers over the CLI app.
type handlers struct {
	app *cli.App
}
