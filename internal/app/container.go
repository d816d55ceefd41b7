package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sharedDomain "github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/eventbus"
	settingsApp "github.com/felixgeelhaar/taskflow/internal/settings/application"
	settingsDomain "github.com/felixgeelhaar/taskflow/internal/settings/domain"
	settingsInfra "github.com/felixgeelhaar/taskflow/internal/settings/infrastructure"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/subscribers"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/dataset"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/memory"
	"github.com/felixgeelhaar/taskflow/pkg/config"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Clock   sharedDomain.Clock

	// Stores
	TaskRepo          *memory.TaskRepository
	NotificationState *memory.NotificationState
	SettingsRepo      settingsDomain.Repository

	// Services
	SettingsService *settingsApp.Service
	EventBus        *eventbus.InProcessEventBus

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
	NotificationProjector     *queries.NotificationProjector

	// Export
	ExportService *ExportService
}

// Option customises a container before it is wired.
type Option func(*Container)

// WithClock replaces the wall clock, e.g. with a sharedDomain.FixedClock.
func WithClock(clock sharedDomain.Clock) Option {
	return func(c *Container) { c.Clock = clock }
}

// WithSettingsRepository replaces the settings store chosen from config.
func WithSettingsRepository(repo settingsDomain.Repository) Option {
	return func(c *Container) { c.SettingsRepo = repo }
}

// NewContainer wires the application and seeds the task store.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:            cfg,
		Logger:            logger,
		Metrics:           observability.NewInMemoryMetrics(),
		TaskRepo:          memory.NewTaskRepository(),
		NotificationState: memory.NewNotificationState(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Settings
	if c.SettingsRepo == nil {
		if cfg.UsesSettingsFile() {
			c.SettingsRepo = settingsInfra.NewFileRepository(cfg.SettingsPath)
		} else {
			c.SettingsRepo = settingsInfra.NewMemoryRepository()
		}
	}
	c.SettingsService = settingsApp.NewService(c.SettingsRepo, logger)
	if _, err := c.SettingsService.Get(ctx); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// "Today" follows the configured time zone, which may change at runtime.
	if c.Clock == nil {
		c.Clock = sharedDomain.ClockFunc(func() time.Time {
			return time.Now().In(c.SettingsService.Location(context.Background()))
		})
	}

	// Event bus
	c.EventBus = eventbus.NewInProcessEventBus(logger, c.Metrics)
	c.EventBus.RegisterConsumer(subscribers.NewTaskActivitySubscriber(c.TaskRepo, c.Metrics, logger))

	// Task commands
	c.AddTaskHandler = commands.NewAddTaskHandler(c.TaskRepo, c.EventBus, c.Clock, c.SettingsService)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.TaskRepo, c.EventBus, c.Clock)
	c.ToggleCompleteHandler = commands.NewToggleCompleteHandler(c.TaskRepo, c.EventBus, c.Clock)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.EventBus, c.Clock)

	// Queries
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo, c.Clock)
	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo, c.Clock)
	c.GetDashboardHandler = queries.NewGetDashboardHandler(c.TaskRepo, c.Clock)
	c.GetDependencyGraphHandler = queries.NewGetDependencyGraphHandler(c.TaskRepo, c.Clock)
	c.GetCalendarHandler = queries.NewGetCalendarHandler(c.TaskRepo, c.Clock, c.SettingsService)
	c.NotificationProjector = queries.NewNotificationProjector(c.TaskRepo, c.NotificationState, c.Clock, c.SettingsService)
	c.ListNotificationsHandler = queries.NewListNotificationsHandler(c.NotificationProjector)

	// Notification commands
	c.NotificationHandler = commands.NewNotificationHandler(c.NotificationState, c.NotificationProjector)

	c.ExportService = NewExportService(c.TaskRepo, c.Clock)

	if err := c.seed(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) seed(ctx context.Context) error {
	if !c.Config.SeedEnabled {
		c.Logger.Debug("seeding disabled, starting with an empty store")
		return nil
	}

	now := c.Clock.Now()
	tasks, err := dataset.Load(ctx, c.Config.DatasetPath, dataset.Options{
		Rebase:   c.Config.SeedRebase,
		Today:    value_objects.DateOf(now),
		Location: now.Location(),
	})
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if err := dataset.Seed(ctx, c.TaskRepo, tasks); err != nil {
		return err
	}

	source := c.Config.DatasetPath
	if source == "" {
		source = "embedded"
	}
	c.Logger.Debug("task store seeded", "tasks", len(tasks), "source", source, "rebased", c.Config.SeedRebase)
	return nil
}

// Close releases the container. The in-memory stores need no cleanup; the
// collected counters are logged at debug level.
func (c *Container) Close() {
	if counters := c.Metrics.Counters(); len(counters) > 0 {
		c.Logger.Debug("session metrics", "counters", counters)
	}
}
