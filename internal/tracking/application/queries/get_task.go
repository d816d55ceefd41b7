package queries

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// GetTaskQuery fetches one task with its dependency context.
type GetTaskQuery struct {
	TaskID uuid.UUID
}

func (GetTaskQuery) QueryName() string { return "task.get" }

// TaskDetailDTO is a task together with its resolved neighbours.
type TaskDetailDTO struct {
	Task          TaskDTO   `json:"task"`
	Prerequisites []TaskDTO `json:"prerequisites"`
	Dependents    []TaskDTO `json:"dependents"`
	Blocked       bool      `json:"blocked"`
	Ready         bool      `json:"ready"`
}

// GetTaskResult reports Found=false for unknown ids instead of an error.
type GetTaskResult struct {
	Found  bool           `json:"found"`
	Detail *TaskDetailDTO `json:"detail,omitempty"`
}

// GetTaskHandler handles GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
	clock    domain.Clock
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository, clock domain.Clock) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo, clock: clock}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*GetTaskResult, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := dependency.NewIndex(tasks)
	t, ok := idx[query.TaskID]
	if !ok {
		return &GetTaskResult{Found: false}, nil
	}

	now := h.clock.Now()
	return &GetTaskResult{
		Found: true,
		Detail: &TaskDetailDTO{
			Task:          NewTaskDTO(t, now),
			Prerequisites: NewTaskDTOs(idx.Resolve(t), now),
			Dependents:    NewTaskDTOs(dependency.Dependents(tasks, t.ID()), now),
			Blocked:       idx.IsBlocked(t),
			Ready:         idx.IsReady(t),
		},
	}, nil
}

// FindTask loads a task, mapping a missing id to found=false.
func FindTask(ctx context.Context, repo task.Repository, id uuid.UUID) (*task.Task, bool, error) {
	t, err := repo.FindByID(ctx, id)
	if errors.Is(err, task.ErrTaskNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}
