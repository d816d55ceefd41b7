package queries

import (
	"context"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
)

// GetDependencyGraphQuery requests the dependency view.
type GetDependencyGraphQuery struct{}

func (GetDependencyGraphQuery) QueryName() string { return "dependencies.get" }

// ChainDTO is a dependent task and its resolved prerequisites.
type ChainDTO struct {
	Task           TaskDTO   `json:"task"`
	Prerequisites  []TaskDTO `json:"prerequisites"`
	CompletedCount int       `json:"completed_count"`
	Total          int       `json:"total"`
	Ratio          float64   `json:"ratio"`
	Blocked        bool      `json:"blocked"`
}

// DependencyGraphDTO is the dependency view.
type DependencyGraphDTO struct {
	Independent []TaskDTO  `json:"independent"`
	Chains      []ChainDTO `json:"chains"`
	Blocked     []TaskDTO  `json:"blocked"`
	Ready       []TaskDTO  `json:"ready"`
}

// GetDependencyGraphHandler handles GetDependencyGraphQuery.
type GetDependencyGraphHandler struct {
	taskRepo task.Repository
	clock    domain.Clock
}

// NewGetDependencyGraphHandler creates a new GetDependencyGraphHandler.
func NewGetDependencyGraphHandler(taskRepo task.Repository, clock domain.Clock) *GetDependencyGraphHandler {
	return &GetDependencyGraphHandler{taskRepo: taskRepo, clock: clock}
}

// Handle executes the GetDependencyGraphQuery.
func (h *GetDependencyGraphHandler) Handle(ctx context.Context, _ GetDependencyGraphQuery) (*DependencyGraphDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()
	g := dependency.Classify(tasks)

	chains := make([]ChainDTO, 0, len(g.Chains))
	for _, c := range g.Chains {
		chains = append(chains, ChainDTO{
			Task:           NewTaskDTO(c.Task, now),
			Prerequisites:  NewTaskDTOs(c.Prerequisites, now),
			CompletedCount: c.CompletedCount(),
			Total:          c.Total(),
			Ratio:          c.Ratio(),
			Blocked:        c.CompletedCount() < c.Total(),
		})
	}

	return &DependencyGraphDTO{
		Independent: NewTaskDTOs(g.Independent, now),
		Chains:      chains,
		Blocked:     NewTaskDTOs(g.Blocked, now),
		Ready:       NewTaskDTOs(g.Ready, now),
	}, nil
}
