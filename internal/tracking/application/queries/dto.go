package queries

import (
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/summary"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
)

// TaskDTO is the read model of a task shared by every view.
type TaskDTO struct {
	ID           uuid.UUID   `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Priority     string      `json:"priority"`
	Status       string      `json:"status"`
	Deadline     string      `json:"deadline,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	Dependencies []uuid.UUID `json:"dependencies"`
	IsOverdue    bool        `json:"is_overdue"`
	IsDueToday   bool        `json:"is_due_today"`
}

// NewTaskDTO maps t, deriving its overdue and due-today flags at now.
func NewTaskDTO(t *task.Task, now time.Time) TaskDTO {
	today := value_objects.DateOf(now)
	dto := TaskDTO{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		CreatedAt:    t.CreatedAt(),
		CompletedAt:  t.CompletedAt(),
		Dependencies: t.Dependencies(),
		IsOverdue:    summary.IsOverdue(t, today),
		IsDueToday:   summary.IsDueToday(t, today),
	}
	if d, ok := t.Deadline(); ok {
		dto.Deadline = d.String()
	}
	return dto
}

// NewTaskDTOs maps a slice of tasks, never returning nil.
func NewTaskDTOs(tasks []*task.Task, now time.Time) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, NewTaskDTO(t, now))
	}
	return out
}

// StatsDTO is the dashboard summary.
type StatsDTO struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	Overdue        int     `json:"overdue"`
	DueToday       int     `json:"due_today"`
	CompletionRate float64 `json:"completion_rate"`
}

func newStatsDTO(s summary.Stats) StatsDTO {
	return StatsDTO{
		Total:          s.Total,
		Completed:      s.Completed,
		Pending:        s.Pending,
		Overdue:        s.Overdue,
		DueToday:       s.DueToday,
		CompletionRate: s.CompletionRate,
	}
}
