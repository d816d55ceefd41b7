package commands

import (
	"context"
	"strings"

	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
)

// AddTaskCommand contains the data needed to add a task. Empty Priority
// falls back to the configured default; empty Status means pending.
type AddTaskCommand struct {
	Title        string
	Description  string
	Priority     string
	Status       string
	Deadline     string
	Dependencies []uuid.UUID
}

func (AddTaskCommand) CommandName() string { return "task.add" }

// AddTaskHandler handles the AddTaskCommand.
type AddTaskHandler struct {
	taskRepo  task.Repository
	publisher sharedApplication.EventPublisher
	clock     domain.Clock
	prefs     queries.Preferences
}

// NewAddTaskHandler creates a new AddTaskHandler.
func NewAddTaskHandler(taskRepo task.Repository, publisher sharedApplication.EventPublisher, clock domain.Clock, prefs queries.Preferences) *AddTaskHandler {
	if prefs == nil {
		prefs = queries.DefaultPreferences{}
	}
	return &AddTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		clock:     clock,
		prefs:     prefs,
	}
}

// Handle executes the AddTaskCommand and returns the created task.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*queries.TaskDTO, error) {
	priority := h.prefs.DefaultPriority(ctx)
	if strings.TrimSpace(cmd.Priority) != "" {
		p, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}
	status := task.StatusPending
	if strings.TrimSpace(cmd.Status) != "" {
		s, err := task.ParseStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	var deadline value_objects.Date
	if strings.TrimSpace(cmd.Deadline) != "" {
		d, err := value_objects.ParseDate(cmd.Deadline)
		if err != nil {
			return nil, err
		}
		deadline = d
	}

	now := h.clock.Now()
	t, err := task.NewTask(cmd.Title, priority, now)
	if err != nil {
		return nil, err
	}
	t.SetDescription(cmd.Description, now)
	t.SetDeadline(deadline, now)
	if err := t.TransitionTo(status, now); err != nil {
		return nil, err
	}

	if len(cmd.Dependencies) > 0 {
		existing, err := h.taskRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := dependency.Validate(existing, t.ID(), cmd.Dependencies); err != nil {
			return nil, err
		}
		if err := t.SetDependencies(cmd.Dependencies, now); err != nil {
			return nil, err
		}
	}

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	if err := sharedApplication.PublishEvents(ctx, h.publisher, t.PullEvents()); err != nil {
		return nil, err
	}

	dto := queries.NewTaskDTO(t, now)
	return &dto, nil
}
