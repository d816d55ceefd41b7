// Package tui provides the interactive terminal view of the task store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

// ErrNoTTY is returned when stdout is not a terminal.
var ErrNoTTY = errors.New("tui requires a TTY")

// Handlers are the application entry points the view reads and mutates
// the store through.
type Handlers struct {
	Dashboard     *queries.GetDashboardHandler
	Tasks         *queries.ListTasksHandler
	Calendar      *queries.GetCalendarHandler
	Dependencies  *queries.GetDependencyGraphHandler
	Notifications *queries.ListNotificationsHandler
	Toggle        *commands.ToggleCompleteHandler
	Notify        *commands.NotificationHandler
}

// Run starts the full screen view and blocks until the user quits.
func Run(ctx context.Context, h Handlers) error {
	if !IsTTY(os.Stdout) {
		return ErrNoTTY
	}
	program := tea.NewProgram(New(ctx, h), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*Model); ok && m.err != nil {
		return m.err
	}
	return nil
}

type tab int

const (
	tabDashboard tab = iota
	tabTasks
	tabCalendar
	tabDependencies
	tabNotifications
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Tasks", "Calendar", "Dependencies", "Notifications"}

var calendarViews = []string{"month", "week", "day"}

type tickMsg time.Time

// Model is the bubbletea model. Every key press re-reads the views it
// shows, so the screen always reflects the store.
type Model struct {
	ctx          context.Context
	h            Handlers
	tab          tab
	cursor       int
	filter       int
	calView      int
	calMove      int
	showHelp     bool
	status       string
	err          error
	tickInterval time.Duration

	dashboard     *queries.DashboardDTO
	tasks         *queries.ListTasksResult
	calendar      *queries.CalendarDTO
	graph         *queries.DependencyGraphDTO
	notifications *queries.NotificationsDTO
}

// New creates the model.
func New(ctx context.Context, h Handlers) *Model {
	return &Model{
		ctx:          ctx,
		h:            h,
		tickInterval: time.Minute,
	}
}

func (m *Model) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case tickMsg:
		// Keeps "today" current when the session crosses midnight.
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return nil
	case "r", "f5":
		m.status = ""
		m.refresh()
		return nil
	case "tab":
		m.switchTab((m.tab + 1) % tabCount)
		return nil
	case "shift+tab":
		m.switchTab((m.tab + tabCount - 1) % tabCount)
		return nil
	case "1", "2", "3", "4", "5":
		m.switchTab(tab(key[0] - '1'))
		return nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
		return nil
	}

	switch m.tab {
	case tabTasks:
		m.handleTaskKey(key)
	case tabCalendar:
		m.handleCalendarKey(key)
	case tabNotifications:
		m.handleNotificationKey(key)
	}
	return nil
}

func (m *Model) handleTaskKey(key string) {
	switch key {
	case "x", " ", "enter":
		if m.tasks == nil || m.cursor >= len(m.tasks.Tasks) {
			return
		}
		t := m.tasks.Tasks[m.cursor]
		res, err := m.h.Toggle.Handle(m.ctx, commands.ToggleCompleteCommand{TaskID: t.ID})
		if err != nil {
			m.err = err
			return
		}
		if res.Found {
			m.status = fmt.Sprintf("%q is now %s", res.Task.Title, res.Task.Status)
		}
		m.refresh()
	case "f":
		m.filter = (m.filter + 1) % len(queries.Filters())
		m.cursor = 0
		m.refresh()
	}
}

func (m *Model) handleCalendarKey(key string) {
	switch key {
	case "left", "h":
		m.calMove--
	case "right", "l":
		m.calMove++
	case "t":
		m.calMove = 0
	case "v":
		m.calView = (m.calView + 1) % len(calendarViews)
		m.calMove = 0
	default:
		return
	}
	m.refresh()
}

func (m *Model) handleNotificationKey(key string) {
	var (
		res *commands.NotificationResult
		err error
	)
	switch key {
	case "a":
		res, err = m.h.Notify.MarkAllRead(m.ctx, commands.MarkAllNotificationsReadCommand{})
	case "enter", "d":
		if m.notifications == nil || m.cursor >= len(m.notifications.Notifications) {
			return
		}
		id := m.notifications.Notifications[m.cursor].ID
		if key == "d" {
			res, err = m.h.Notify.Dismiss(m.ctx, commands.DismissNotificationCommand{ID: id})
		} else {
			res, err = m.h.Notify.MarkRead(m.ctx, commands.MarkNotificationReadCommand{ID: id})
		}
	default:
		return
	}
	if err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("%d notification(s) updated", res.Affected)
	m.refresh()
}

func (m *Model) switchTab(t tab) {
	if t < 0 || t >= tabCount {
		return
	}
	m.tab = t
	m.cursor = 0
	m.status = ""
	m.refresh()
}

// rows is the number of selectable rows on the current tab.
func (m *Model) rows() int {
	switch m.tab {
	case tabTasks:
		if m.tasks != nil {
			return len(m.tasks.Tasks)
		}
	case tabNotifications:
		if m.notifications != nil {
			return len(m.notifications.Notifications)
		}
	}
	return 0
}

func (m *Model) refresh() {
	m.err = nil
	var err error
	switch m.tab {
	case tabDashboard:
		m.dashboard, err = m.h.Dashboard.Handle(m.ctx, queries.GetDashboardQuery{})
	case tabTasks:
		m.tasks, err = m.h.Tasks.Handle(m.ctx, queries.ListTasksQuery{Filter: string(queries.Filters()[m.filter])})
	case tabCalendar:
		m.calendar, err = m.h.Calendar.Handle(m.ctx, queries.GetCalendarQuery{
			Granularity: calendarViews[m.calView],
			Move:        m.calMove,
		})
	case tabDependencies:
		m.graph, err = m.h.Dependencies.Handle(m.ctx, queries.GetDependencyGraphQuery{})
	case tabNotifications:
		m.notifications, err = m.h.Notifications.Handle(m.ctx, queries.ListNotificationsQuery{})
	}
	if err != nil {
		m.err = err
		return
	}
	if n := m.rows(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)
	writeTabs(&b, m.tab)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}
	if m.err != nil {
		b.WriteString("Error:\n")
		b.WriteString("  " + m.err.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}

	switch m.tab {
	case tabDashboard:
		writeDashboard(&b, m.dashboard)
	case tabTasks:
		writeTasks(&b, m.tasks, m.filter, m.cursor)
	case tabCalendar:
		writeCalendar(&b, m.calendar)
	case tabDependencies:
		writeDependencies(&b, m.graph)
	case tabNotifications:
		writeNotifications(&b, m.notifications, m.cursor)
	}

	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
