package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// ToggleCompleteCommand flips a task between completed and open.
type ToggleCompleteCommand struct {
	TaskID uuid.UUID
}

func (ToggleCompleteCommand) CommandName() string { return "task.toggle" }

// ToggleCompleteHandler handles the ToggleCompleteCommand.
type ToggleCompleteHandler struct {
	taskRepo  task.Repository
	publisher sharedApplication.EventPublisher
	clock     domain.Clock
}

// NewToggleCompleteHandler creates a new ToggleCompleteHandler.
func NewToggleCompleteHandler(taskRepo task.Repository, publisher sharedApplication.EventPublisher, clock domain.Clock) *ToggleCompleteHandler {
	return &ToggleCompleteHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle executes the ToggleCompleteCommand.
func (h *ToggleCompleteHandler) Handle(ctx context.Context, cmd ToggleCompleteCommand) (*TaskResult, error) {
	t, found, err := queries.FindTask(ctx, h.taskRepo, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &TaskResult{Found: false}, nil
	}

	now := h.clock.Now()
	t.ToggleComplete(now)

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	if err := sharedApplication.PublishEvents(ctx, h.publisher, t.PullEvents()); err != nil {
		return nil, err
	}

	dto := queries.NewTaskDTO(t, now)
	return &TaskResult{Found: true, Task: &dto}, nil
}
