package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

type calendarInput struct {
	View     string `json:"view,omitempty"`
	Date     string `json:"date,omitempty"`
	Move     int    `json:"move,omitempty"`
	Selected string `json:"selected,omitempty"`
}

func registerViewTools(srv *mcp.Server, h handlers) {
	srv.Tool("dashboard.get").
		Description("Get task statistics, tasks due today, overdue tasks and the five most recent tasks").
		Handler(h.dashboard)

	srv.Tool("dependencies.get").
		Description("Get dependency chains with completion ratios and the blocked, ready and independent tasks").
		Handler(h.dependencies)

	srv.Tool("calendar.get").
		Description("Get deadlines bucketed by day, week or month (view) around date, moved by move units; selected lists one day's tasks").
		Handler(h.calendar)
}

func (h handlers) dashboard(ctx context.Context, _ struct{}) (*queries.DashboardDTO, error) {
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), queries.GetDashboardQuery{}, h.app.GetDashboardHandler.Handle)
}

func (h handlers) dependencies(ctx context.Context, _ struct{}) (*queries.DependencyGraphDTO, error) {
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), queries.GetDependencyGraphQuery{}, h.app.GetDependencyGraphHandler.Handle)
}

func (h handlers) calendar(ctx context.Context, input calendarInput) (*queries.CalendarDTO, error) {
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), queries.GetCalendarQuery{
		Granularity: input.View,
		Anchor:      input.Date,
		Move:        input.Move,
		Selected:    input.Selected,
	}, h.app.GetCalendarHandler.Handle)
}
