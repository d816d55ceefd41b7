// Package summary derives dashboard figures from a task snapshot.
package summary

import (
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// Stats holds the counts shown on the dashboard. Completed+Pending always
// equals Total; Pending covers in-progress tasks too.
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	Overdue        int
	DueToday       int
	CompletionRate float64
}

// Compute produces Stats in a single pass. now is read in its own location
// to decide which calendar day is today.
func Compute(tasks []*task.Task, now time.Time) Stats {
	today := value_objects.DateOf(now)

	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.IsCompleted() {
			s.Completed++
			continue
		}
		s.Pending++
		if IsOverdue(t, today) {
			s.Overdue++
		}
		if IsDueToday(t, today) {
			s.DueToday++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total)
	}
	return s
}

// IsOverdue reports whether an open task's deadline day has fully passed.
func IsOverdue(t *task.Task, today value_objects.Date) bool {
	if t.IsCompleted() {
		return false
	}
	deadline, ok := t.Deadline()
	return ok && deadline.Before(today)
}

// IsDueToday reports whether an open task is due on today's calendar date.
func IsDueToday(t *task.Task, today value_objects.Date) bool {
	if t.IsCompleted() {
		return false
	}
	deadline, ok := t.Deadline()
	return ok && deadline.Equal(today)
}

// DueToday returns the open tasks due today, in snapshot order.
func DueToday(tasks []*task.Task, now time.Time) []*task.Task {
	today := value_objects.DateOf(now)
	return filter(tasks, func(t *task.Task) bool { return IsDueToday(t, today) })
}

// Overdue returns the open tasks whose deadline has passed, in snapshot order.
func Overdue(tasks []*task.Task, now time.Time) []*task.Task {
	today := value_objects.DateOf(now)
	return filter(tasks, func(t *task.Task) bool { return IsOverdue(t, today) })
}

func filter(tasks []*task.Task, keep func(*task.Task) bool) []*task.Task {
	out := make([]*task.Task, 0)
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
