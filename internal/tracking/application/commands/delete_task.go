package commands

import (
	"context"

	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// DeleteTaskCommand removes a task. Dependents keep the dangling id.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
}

func (DeleteTaskCommand) CommandName() string { return "task.delete" }

// DeleteTaskResult reports whether a task was removed.
type DeleteTaskResult struct {
	Found bool `json:"found"`
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo  task.Repository
	publisher sharedApplication.EventPublisher
	clock     domain.Clock
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository, publisher sharedApplication.EventPublisher, clock domain.Clock) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		taskRepo:  taskRepo,
		publisher: publisher,
		clock:     clock,
	}
}

// Handle executes the DeleteTaskCommand.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) (*DeleteTaskResult, error) {
	t, found, err := queries.FindTask(ctx, h.taskRepo, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if !found {
		return &DeleteTaskResult{Found: false}, nil
	}

	t.MarkDeleted(h.clock.Now())
	if err := h.taskRepo.Delete(ctx, t.ID()); err != nil {
		return nil, err
	}
	if err := sharedApplication.PublishEvents(ctx, h.publisher, t.PullEvents()); err != nil {
		return nil, err
	}
	return &DeleteTaskResult{Found: true}, nil
}
