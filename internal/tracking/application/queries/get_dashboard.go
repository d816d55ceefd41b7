package queries

import (
	"context"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/summary"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
)

// RecentTaskCount is how many tasks the dashboard lists as recent.
const RecentTaskCount = 5

// GetDashboardQuery requests the dashboard.
type GetDashboardQuery struct{}

func (GetDashboardQuery) QueryName() string { return "dashboard.get" }

// DashboardDTO contains the dashboard figures and lists.
type DashboardDTO struct {
	Stats    StatsDTO  `json:"stats"`
	DueToday []TaskDTO `json:"due_today"`
	Overdue  []TaskDTO `json:"overdue"`
	Recent   []TaskDTO `json:"recent"`
}

// GetDashboardHandler handles GetDashboardQuery.
type GetDashboardHandler struct {
	taskRepo task.Repository
	clock    domain.Clock
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(taskRepo task.Repository, clock domain.Clock) *GetDashboardHandler {
	return &GetDashboardHandler{taskRepo: taskRepo, clock: clock}
}

// Handle executes the GetDashboardQuery. Recent tasks are the first ones
// in collection order.
func (h *GetDashboardHandler) Handle(ctx context.Context, _ GetDashboardQuery) (*DashboardDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()

	recent := tasks
	if len(recent) > RecentTaskCount {
		recent = recent[:RecentTaskCount]
	}

	return &DashboardDTO{
		Stats:    newStatsDTO(summary.Compute(tasks, now)),
		DueToday: NewTaskDTOs(summary.DueToday(tasks, now), now),
		Overdue:  NewTaskDTOs(summary.Overdue(tasks, now), now),
		Recent:   NewTaskDTOs(recent, now),
	}, nil
}
