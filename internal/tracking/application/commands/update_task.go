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

// UpdateTaskCommand merges the non-nil fields into a task. An empty
// Deadline clears it.
type UpdateTaskCommand struct {
	TaskID       uuid.UUID
	Title        *string
	Description  *string
	Priority     *string
	Status       *string
	Deadline     *string
	Dependencies *[]uuid.UUID
}

func (UpdateTaskCommand) CommandName() string { return "task.update" }

// TaskResult reports Found=false when the id is not in the store.
type TaskResult struct {
	Found bool             `json:"found"`
	Task  *queries.TaskDTO `json:"task,omitempty"`
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo  task.Repository
	publisher sharedApplication.EventPublisher
	clock     domain.Clock
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, publisher sharedApplication.EventPublisher, clock domain.Clock) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*TaskResult, error) {
	t, found, err := queries.FindTask(ctx, h.taskRepo, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &TaskResult{Found: false}, nil
	}

	now := h.clock.Now()
	var updatedFields []string

	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title, now); err != nil {
			return nil, err
		}
		updatedFields = append(updatedFields, "title")
	}

	if cmd.Description != nil {
		t.SetDescription(*cmd.Description, now)
		updatedFields = append(updatedFields, "description")
	}

	if cmd.Priority != nil {
		priority, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return nil, err
		}
		if err := t.SetPriority(priority, now); err != nil {
			return nil, err
		}
		updatedFields = append(updatedFields, "priority")
	}

	if cmd.Deadline != nil {
		var deadline value_objects.Date
		if strings.TrimSpace(*cmd.Deadline) != "" {
			if deadline, err = value_objects.ParseDate(*cmd.Deadline); err != nil {
				return nil, err
			}
		}
		t.SetDeadline(deadline, now)
		updatedFields = append(updatedFields, "deadline")
	}

	if cmd.Dependencies != nil {
		all, err := h.taskRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := dependency.Validate(all, t.ID(), *cmd.Dependencies); err != nil {
			return nil, err
		}
		if err := t.SetDependencies(*cmd.Dependencies, now); err != nil {
			return nil, err
		}
		updatedFields = append(updatedFields, "dependencies")
	}

	// Status goes through the transition so completedAt stays consistent.
	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		if err := t.TransitionTo(status, now); err != nil {
			return nil, err
		}
		updatedFields = append(updatedFields, "status")
	}

	if len(updatedFields) > 0 {
		t.RecordUpdated(updatedFields, now)
		if err := h.taskRepo.Save(ctx, t); err != nil {
			return nil, err
		}
		if err := sharedApplication.PublishEvents(ctx, h.publisher, t.PullEvents()); err != nil {
			return nil, err
		}
	}

	dto := queries.NewTaskDTO(t, now)
	return &TaskResult{Found: true, Task: &dto}, nil
}
