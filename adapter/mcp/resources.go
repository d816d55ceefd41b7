package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

const (
	tasksURI        = "taskflow://tasks"
	tasksTodayURI   = "taskflow://tasks/today"
	tasksOverdueURI = "taskflow://tasks/overdue"
	statsURI        = "taskflow://stats"
	metricsURI      = "taskflow://metrics"
)

// RegisterResources registers read-only resources over the task store.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}
	h := handlers{app: deps.App}

	srv.Resource(tasksURI).
		Name("Tasks").
		Description("All tasks in insertion order").
		MimeType("application/json").
		Handler(h.tasksResource)

	srv.Resource(tasksTodayURI).
		Name("Due Today").
		Description("Unfinished tasks due today").
		MimeType("application/json").
		Handler(h.todayResource)

	srv.Resource(tasksOverdueURI).
		Name("Overdue Tasks").
		Description("Unfinished tasks whose deadline has passed").
		MimeType("application/json").
		Handler(h.overdueResource)

	srv.Resource(statsURI).
		Name("Statistics").
		Description("Task totals, overdue and due today counts, completion rate").
		MimeType("application/json").
		Handler(h.statsResource)

	srv.Resource(metricsURI).
		Name("Metrics").
		Description("Operation and task activity counters since the server started").
		MimeType("application/json").
		Handler(h.metricsResource)

	return nil
}

func (h handlers) tasksResource(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	list, err := h.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, list.Tasks)
}

func (h handlers) todayResource(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	dash, err := h.app.GetDashboardHandler.Handle(ctx, queries.GetDashboardQuery{})
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, dash.DueToday)
}

func (h handlers) overdueResource(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	list, err := h.app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{Filter: string(queries.FilterOverdue)})
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, list.Tasks)
}

func (h handlers) statsResource(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	dash, err := h.app.GetDashboardHandler.Handle(ctx, queries.GetDashboardQuery{})
	if err != nil {
		return nil, err
	}
	return jsonResource(uri, dash.Stats)
}

func (h handlers) metricsResource(_ context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
	counters := map[string]int64{}
	if h.app.Metrics != nil {
		counters = h.app.Metrics.Counters()
	}
	return jsonResource(uri, counters)
}
