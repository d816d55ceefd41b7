package cli

import (
	"log/slog"

	internalApp "github.com/felixgeelhaar/taskflow/internal/app"
	settingsApp "github.com/felixgeelhaar/taskflow/internal/settings/application"
	sharedDomain "github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	AddTaskHandler        *commands.AddTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	ToggleCompleteHandler *commands.ToggleCompleteHandler
	DeleteTaskHandler     *commands.DeleteTaskHandler

	// Notification Command Handlers
	NotificationHandler *commands.NotificationHandler

	// Query Handlers
	ListTasksHandler          *queries.ListTasksHandler
	GetTaskHandler            *queries.GetTaskHandler
	GetDashboardHandler       *queries.GetDashboardHandler
	GetDependencyGraphHandler *queries.GetDependencyGraphHandler
	GetCalendarHandler        *queries.GetCalendarHandler
	ListNotificationsHandler  *queries.ListNotificationsHandler

	// Services
	SettingsService *settingsApp.Service
	ExportService   *internalApp.ExportService

	Clock   sharedDomain.Clock
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
}

// NewApp creates a new CLI application from a wired container.
func NewApp(c *internalApp.Container) *App {
	return &App{
		AddTaskHandler:            c.AddTaskHandler,
		UpdateTaskHandler:         c.UpdateTaskHandler,
		ToggleCompleteHandler:     c.ToggleCompleteHandler,
		DeleteTaskHandler:         c.DeleteTaskHandler,
		NotificationHandler:       c.NotificationHandler,
		ListTasksHandler:          c.ListTasksHandler,
		GetTaskHandler:            c.GetTaskHandler,
		GetDashboardHandler:       c.GetDashboardHandler,
		GetDependencyGraphHandler: c.GetDependencyGraphHandler,
		GetCalendarHandler:        c.GetCalendarHandler,
		ListNotificationsHandler:  c.ListNotificationsHandler,
		SettingsService:           c.SettingsService,
		ExportService:             c.ExportService,
		Clock:                     c.Clock,
		Logger:                    c.Logger,
		Metrics:                   c.Metrics,
	}
}

// Global app instance (set during initialization)
var app *App

// SetApp sets the global app instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global app instance.
func GetApp() *App {
	return app
}
