package calendar

import (
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/summary"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// Cell is one day of a View with the tasks due on it.
type Cell struct {
	Date            value_objects.Date
	Tasks           []*task.Task
	IsToday         bool
	HasOverdue      bool
	HasHighPriority bool
	PriorityCounts  map[value_objects.Priority]int
}

// Bucket places every task with a deadline inside the view into the cell
// of that date. Tasks keep snapshot order within a cell.
func Bucket(v View, tasks []*task.Task, now time.Time) []Cell {
	today := value_objects.DateOf(now)
	byDate := make(map[value_objects.Date][]*task.Task)
	for _, t := range tasks {
		if d, ok := t.Deadline(); ok {
			byDate[d] = append(byDate[d], t)
		}
	}

	days := v.Days()
	cells := make([]Cell, 0, len(days))
	for _, d := range days {
		cells = append(cells, newCell(d, byDate[d], today))
	}
	return cells
}

// TasksOn returns the tasks whose deadline is date, in snapshot order.
func TasksOn(tasks []*task.Task, date value_objects.Date, now time.Time) Cell {
	out := make([]*task.Task, 0)
	for _, t := range tasks {
		if d, ok := t.Deadline(); ok && d.Equal(date) {
			out = append(out, t)
		}
	}
	return newCell(date, out, value_objects.DateOf(now))
}

func newCell(date value_objects.Date, tasks []*task.Task, today value_objects.Date) Cell {
	c := Cell{
		Date:           date,
		Tasks:          tasks,
		IsToday:        date.Equal(today),
		PriorityCounts: make(map[value_objects.Priority]int, 3),
	}
	if c.Tasks == nil {
		c.Tasks = make([]*task.Task, 0)
	}
	for _, p := range value_objects.Priorities() {
		c.PriorityCounts[p] = 0
	}
	for _, t := range c.Tasks {
		c.PriorityCounts[t.Priority()]++
		if t.Priority() == value_objects.PriorityHigh {
			c.HasHighPriority = true
		}
		if summary.IsOverdue(t, today) {
			c.HasOverdue = true
		}
	}
	return c
}
