package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/taskflow/internal/app"
	sharedDomain "github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

var now = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (*Model, *app.Container) {
	t.Helper()
	ctx := context.Background()
	cfg := &config.Config{AppEnv: "test", SettingsPath: "-"}
	c, err := app.NewContainer(ctx, cfg, observability.DiscardLogger(), app.WithClock(sharedDomain.FixedClock{At: now}))
	require.NoError(t, err)

	add := func(cmd commands.AddTaskCommand) {
		_, err := c.AddTaskHandler.Handle(ctx, cmd)
		require.NoError(t, err)
	}
	add(commands.AddTaskCommand{Title: "Write report", Priority: "high", Deadline: "2025-01-20"})
	add(commands.AddTaskCommand{Title: "Pay rent", Priority: "medium", Deadline: "2025-01-18"})
	add(commands.AddTaskCommand{Title: "Water plants", Priority: "low"})

	m := New(ctx, Handlers{
		Dashboard:     c.GetDashboardHandler,
		Tasks:         c.ListTasksHandler,
		Calendar:      c.GetCalendarHandler,
		Dependencies:  c.GetDependencyGraphHandler,
		Notifications: c.ListNotificationsHandler,
		Toggle:        c.ToggleCompleteHandler,
		Notify:        c.NotificationHandler,
	})
	m.Init()
	return m, c
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel_Dashboard(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()

	assert.Contains(t, view, "[1 Dashboard]")
	assert.Contains(t, view, "Total: 3")
	assert.Contains(t, view, "Overdue: 1")
	assert.Contains(t, view, "Due today: 1")
	assert.Contains(t, view, "Write report")
}

func TestModel_SwitchTabs(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "tab")
	assert.Equal(t, tabTasks, m.tab)
	assert.Contains(t, m.View(), "[2 Tasks]")

	press(m, "5")
	assert.Equal(t, tabNotifications, m.tab)

	press(m, "tab")
	assert.Equal(t, tabDashboard, m.tab)
}

func TestModel_ToggleTask(t *testing.T) {
	m, c := newTestModel(t)
	press(m, "2")
	press(m, "down")

	press(m, "x")

	assert.Contains(t, m.status, `"Pay rent" is now completed`)
	assert.Equal(t, 1, m.tasks.Counts["completed"])
	stored, err := c.TaskRepo.FindAll(context.Background())
	require.NoError(t, err)
	assert.True(t, stored[1].IsCompleted())
}

func TestModel_CycleFilter(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "2")

	press(m, "f") // pending
	press(m, "f") // completed

	assert.Empty(t, m.tasks.Tasks)
	assert.Contains(t, m.View(), "No tasks match this filter.")

	press(m, "f") // overdue
	require.Len(t, m.tasks.Tasks, 1)
	assert.Equal(t, "Pay rent", m.tasks.Tasks[0].Title)
}

func TestModel_CalendarNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "3")
	assert.Equal(t, "January 2025", m.calendar.Title)
	assert.Contains(t, m.View(), "2025-01-20 (today)")

	press(m, "l")
	assert.Equal(t, "February 2025", m.calendar.Title)

	press(m, "t")
	press(m, "v")
	assert.Equal(t, "week", m.calendar.Granularity)
	assert.Len(t, m.calendar.Cells, 7)
}

func TestModel_Notifications(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "5")
	require.NotEmpty(t, m.notifications.Notifications)
	before := m.notifications.Unread
	require.Positive(t, before)

	press(m, "enter")
	assert.Equal(t, before-1, m.notifications.Unread)

	press(m, "a")
	assert.Zero(t, m.notifications.Unread)

	count := len(m.notifications.Notifications)
	press(m, "d")
	assert.Len(t, m.notifications.Notifications, count-1)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[..........]", progressBar(0, 10))
	assert.Equal(t, "[#####.....]", progressBar(0.5, 10))
	assert.Equal(t, "[##########]", progressBar(1, 10))
}

func TestStyleTask_KeepsText(t *testing.T) {
	overdue := queries.TaskDTO{Title: "Late", IsOverdue: true}
	done := queries.TaskDTO{Title: "Done", Status: "completed"}

	assert.Contains(t, styleTask(overdue, formatTask(overdue, false)), "Late")
	assert.Contains(t, styleTask(done, formatTask(done, false)), "Done")
	assert.Equal(t, "plain", styleTask(queries.TaskDTO{Status: "pending"}, "plain"))
}
