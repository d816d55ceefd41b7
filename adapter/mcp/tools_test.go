package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskflow/adapter/cli"
	"github.com/felixgeelhaar/taskflow/adapter/cli/clitest"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/dataset"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

func newHandlers(t *testing.T, seed bool) handlers {
	t.Helper()
	clitest.Setup(t, seed)
	return handlers{app: cli.GetApp()}
}

func newServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	h := newHandlers(t, true)
	srv := newServer()
	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: h.app}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	for _, want := range []string{
		"task.add", "task.update", "task.toggle", "task.delete", "task.list", "task.get",
		"dashboard.get", "dependencies.get", "calendar.get",
		"notifications.list", "notifications.read", "notifications.dismiss",
		"settings.get", "settings.set", "task.export",
	} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestRegister_RequiresArguments(t *testing.T) {
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
	assert.Error(t, RegisterCLITools(newServer(), ToolDependencies{}))
	assert.Error(t, RegisterResources(newServer(), ToolDependencies{}))
	assert.Error(t, RegisterPrompts(nil, ToolDependencies{}))
}

func TestRegisterResourcesAndPrompts(t *testing.T) {
	h := newHandlers(t, true)
	srv := newServer()
	require.NoError(t, RegisterResources(srv, ToolDependencies{App: h.app}))
	require.NoError(t, RegisterPrompts(srv, ToolDependencies{App: h.app}))
}

func TestTaskTools_AddUpdateToggleDelete(t *testing.T) {
	h := newHandlers(t, false)
	ctx := context.Background()

	first, err := h.addTask(ctx, taskAddInput{Title: "Draft agenda", Priority: "high", Deadline: "2025-01-26"})
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)

	second, err := h.addTask(ctx, taskAddInput{
		Title:        "Hold meeting",
		Dependencies: []string{first.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", second.Priority)
	assert.Equal(t, first.ID, second.Dependencies[0])

	title := "Hold kickoff meeting"
	updated, err := h.updateTask(ctx, taskUpdateInput{TaskID: second.ID.String(), Title: &title})
	require.NoError(t, err)
	require.True(t, updated.Found)
	assert.Equal(t, title, updated.Task.Title)

	toggled, err := h.toggleTask(ctx, taskIDInput{TaskID: first.ID.String()})
	require.NoError(t, err)
	require.True(t, toggled.Found)
	assert.Equal(t, "completed", toggled.Task.Status)
	assert.NotNil(t, toggled.Task.CompletedAt)

	detail, err := h.getTask(ctx, taskIDInput{TaskID: second.ID.String()})
	require.NoError(t, err)
	require.True(t, detail.Found)
	assert.True(t, detail.Detail.Ready)
	assert.False(t, detail.Detail.Blocked)

	deleted, err := h.deleteTask(ctx, taskIDInput{TaskID: first.ID.String()})
	require.NoError(t, err)
	assert.True(t, deleted.Found)

	list, err := h.listTasks(ctx, taskListInput{})
	require.NoError(t, err)
	require.Len(t, list.Tasks, 1)
	assert.Equal(t, second.ID, list.Tasks[0].ID)
}

func TestTaskTools_Validation(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	_, err := h.addTask(ctx, taskAddInput{})
	assert.Error(t, err)

	_, err = h.toggleTask(ctx, taskIDInput{})
	assert.Error(t, err)

	_, err = h.addTask(ctx, taskAddInput{Title: "Bad", Priority: "urgent"})
	assert.Error(t, err)

	self := dataset.MapID("2").String()
	_, err = h.updateTask(ctx, taskUpdateInput{TaskID: "2", Dependencies: &[]string{self}})
	assert.Error(t, err)
}

func TestTaskTools_UnknownIDIsNotFound(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	res, err := h.toggleTask(ctx, taskIDInput{TaskID: "no-such-task"})
	require.NoError(t, err)
	assert.False(t, res.Found)

	del, err := h.deleteTask(ctx, taskIDInput{TaskID: "no-such-task"})
	require.NoError(t, err)
	assert.False(t, del.Found)
}

func TestTaskTools_ListFilters(t *testing.T) {
	h := newHandlers(t, true)

	list, err := h.listTasks(context.Background(), taskListInput{Filter: "overdue"})
	require.NoError(t, err)
	assert.Len(t, list.Tasks, 6)
	assert.Equal(t, 20, list.Counts[queries.FilterAll])
	assert.Equal(t, 8, list.Counts[queries.FilterCompleted])
	assert.Equal(t, 12, list.Counts[queries.FilterPending])

	_, err = h.listTasks(context.Background(), taskListInput{Filter: "someday"})
	assert.ErrorIs(t, err, queries.ErrInvalidFilter)
}

func TestViewTools(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	dash, err := h.dashboard(ctx, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 20, dash.Stats.Total)
	assert.Equal(t, 6, dash.Stats.Overdue)
	require.Len(t, dash.DueToday, 1)
	assert.Equal(t, dataset.MapID("11"), dash.DueToday[0].ID)

	graph, err := h.dependencies(ctx, struct{}{})
	require.NoError(t, err)
	assert.Len(t, graph.Blocked, 3)
	assert.Len(t, graph.Ready, 8)
	assert.Len(t, graph.Independent, 4)

	cal, err := h.calendar(ctx, calendarInput{View: "month", Date: "2025-01-25", Selected: "2025-01-25"})
	require.NoError(t, err)
	assert.Len(t, cal.Cells, 31)
	require.NotNil(t, cal.Selected)
	assert.Equal(t, 1, cal.Selected.High)

	next, err := h.calendar(ctx, calendarInput{View: "month", Date: "2025-01-25", Move: 1})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", next.Anchor)
	assert.Len(t, next.Cells, 28)
}

func TestNotificationTools(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	list, err := h.listNotifications(ctx, notificationListInput{})
	require.NoError(t, err)
	require.NotEmpty(t, list.Notifications)
	unread := list.Unread

	id := "deadline-" + dataset.MapID("11").String()
	res, err := h.readNotifications(ctx, notificationReadInput{ID: id})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)

	list, err = h.listNotifications(ctx, notificationListInput{})
	require.NoError(t, err)
	assert.Equal(t, unread-1, list.Unread)

	res, err = h.dismissNotification(ctx, notificationIDInput{ID: id})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)

	_, err = h.readNotifications(ctx, notificationReadInput{All: true})
	require.NoError(t, err)

	list, err = h.listNotifications(ctx, notificationListInput{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
	assert.Zero(t, list.Unread)
}

func TestSettingsTools(t *testing.T) {
	h := newHandlers(t, false)
	ctx := context.Background()

	s, err := h.setSetting(ctx, settingsSetInput{Key: "preferences.default_priority", Value: "high"})
	require.NoError(t, err)
	assert.Equal(t, "high", s.Preferences.DefaultPriority)

	got, err := h.settings(ctx, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "high", got.Preferences.DefaultPriority)

	_, err = h.setSetting(ctx, settingsSetInput{})
	assert.Error(t, err)
}

func TestResources(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	content, err := h.overdueResource(ctx, tasksOverdueURI, nil)
	require.NoError(t, err)
	assert.Equal(t, tasksOverdueURI, content.URI)
	assert.Equal(t, "application/json", content.MimeType)

	var overdue []queries.TaskDTO
	require.NoError(t, json.Unmarshal([]byte(content.Text), &overdue))
	assert.Len(t, overdue, 6)

	content, err = h.statsResource(ctx, statsURI, nil)
	require.NoError(t, err)
	var stats queries.StatsDTO
	require.NoError(t, json.Unmarshal([]byte(content.Text), &stats))
	assert.Equal(t, 20, stats.Total)
	assert.Equal(t, 1, stats.DueToday)

	content, err = h.tasksResource(ctx, tasksURI, nil)
	require.NoError(t, err)
	var all []queries.TaskDTO
	require.NoError(t, json.Unmarshal([]byte(content.Text), &all))
	assert.Len(t, all, 20)

	content, err = h.todayResource(ctx, tasksTodayURI, nil)
	require.NoError(t, err)
	var today []queries.TaskDTO
	require.NoError(t, json.Unmarshal([]byte(content.Text), &today))
	require.Len(t, today, 1)
	assert.Equal(t, "Develop MVP features", today[0].Title)
}

func TestHandlers_RecordOperationMetrics(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	_, err := h.listTasks(ctx, taskListInput{})
	require.NoError(t, err)
	_, err = h.toggleTask(ctx, taskIDInput{TaskID: "17"})
	require.NoError(t, err)

	list := observability.T(observability.OperationKey, "task.list")
	toggle := observability.T(observability.OperationKey, "task.toggle")
	assert.Equal(t, int64(1), h.app.Metrics.GetCounter(observability.MetricOperationTotal, list))
	assert.Equal(t, int64(1), h.app.Metrics.GetCounter(observability.MetricOperationTotal, toggle))

	content, err := h.metricsResource(ctx, metricsURI, nil)
	require.NoError(t, err)
	var counters map[string]int64
	require.NoError(t, json.Unmarshal([]byte(content.Text), &counters))
	assert.Equal(t, int64(1), counters[observability.MetricOperationTotal+":operation=task.list"])
}

func TestTaskTools_Export(t *testing.T) {
	h := newHandlers(t, true)
	ctx := context.Background()

	out, err := h.exportTasks(ctx, taskExportInput{Format: "ics"})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "BEGIN:VCALENDAR")

	out, err = h.exportTasks(ctx, taskExportInput{})
	require.NoError(t, err)
	assert.Equal(t, "json", out.Format)
	assert.Contains(t, out.Content, `"tasks"`)

	_, err = h.exportTasks(ctx, taskExportInput{Format: "csv"})
	assert.Error(t, err)
}
