package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/google/uuid"
)

// parseTaskID accepts the same id forms as the CLI.
func (h handlers) parseTaskID(ctx context.Context, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.New("task_id is required")
	}
	return cli.ResolveTaskID(ctx, h.app, value)
}

func (h handlers) parseTaskIDs(ctx context.Context, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := h.parseTaskID(ctx, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// metrics returns the app's collector, or nil so timing skips metrics.
func (h handlers) metrics() observability.Metrics {
	if h.app.Metrics == nil {
		return nil
	}
	return h.app.Metrics
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
