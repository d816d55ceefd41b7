// Package notification projects a task snapshot into in-app notifications.
//
// Notifications are never stored. They are regenerated from the snapshot on
// every read; only read and dismissed flags are kept, keyed by id.
package notification

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
)

// Type is the category of a notification.
type Type string

const (
	TypeDeadline       Type = "deadline"
	TypeOverdue        Type = "overdue"
	TypeCompleted      Type = "completed"
	TypeRecommendation Type = "recommendation"
)

const (
	IDBlockedRecommendation = "recommendation-dependencies"
	IDReadyRecommendation   = "recommendation-ready"

	// DeadlineWindowDays is how many days ahead a deadline reminder fires.
	DeadlineWindowDays = 2
	completedWindow    = 24 * time.Hour
)

// Notification is a derived message about the task collection.
type Notification struct {
	ID        string
	Type      Type
	Title     string
	Message   string
	Timestamp time.Time
	TaskID    uuid.UUID
	Read      bool
	Priority  value_objects.Priority
}

// HasTask reports whether the notification is about a single task.
func (n Notification) HasTask() bool {
	return n.TaskID != uuid.Nil
}

// Categories switches notification categories on or off.
type Categories struct {
	Deadlines       bool
	Overdue         bool
	Completions     bool
	Recommendations bool
}

// AllCategories enables every category.
func AllCategories() Categories {
	return Categories{Deadlines: true, Overdue: true, Completions: true, Recommendations: true}
}

// Generate derives notifications from tasks at now, newest first. Ties keep
// generation order: per task deadline, overdue, completed; then the
// recommendations.
func Generate(tasks []*task.Task, now time.Time, categories Categories) []Notification {
	today := value_objects.DateOf(now)
	out := make([]Notification, 0)

	for _, t := range tasks {
		if t.IsCompleted() {
			if categories.Completions {
				if n, ok := completed(t, now); ok {
					out = append(out, n)
				}
			}
			continue
		}

		deadline, ok := t.Deadline()
		if !ok {
			continue
		}
		days := today.DaysUntil(deadline)
		switch {
		case days >= 0 && days <= DeadlineWindowDays && categories.Deadlines:
			out = append(out, Notification{
				ID:        "deadline-" + t.ID().String(),
				Type:      TypeDeadline,
				Title:     "Upcoming Deadline",
				Message:   dueMessage(t.Title(), days),
				Timestamp: now.Add(-time.Hour),
				TaskID:    t.ID(),
				Priority:  t.Priority(),
			})
		case days < 0 && categories.Overdue:
			out = append(out, Notification{
				ID:        "overdue-" + t.ID().String(),
				Type:      TypeOverdue,
				Title:     "Task Overdue",
				Message:   fmt.Sprintf("%q is %s overdue", t.Title(), plural(-days, "day")),
				Timestamp: now.Add(-12 * time.Hour),
				TaskID:    t.ID(),
				Priority:  value_objects.PriorityHigh,
			})
		}
	}

	if categories.Recommendations {
		g := dependency.Classify(tasks)
		if n := len(g.Blocked); n > 0 {
			out = append(out, Notification{
				ID:        IDBlockedRecommendation,
				Type:      TypeRecommendation,
				Title:     "Focus on Prerequisites",
				Message:   fmt.Sprintf("You have %s waiting for dependencies to complete", plural(n, "task")),
				Timestamp: now.Add(-30 * time.Minute),
				Priority:  value_objects.PriorityMedium,
			})
		}
		if n := len(g.Ready); n > 0 {
			out = append(out, Notification{
				ID:        IDReadyRecommendation,
				Type:      TypeRecommendation,
				Title:     "Tasks Ready to Start",
				Message:   fmt.Sprintf("%s ready to begin, all dependencies completed", plural(n, "task")),
				Timestamp: now.Add(-15 * time.Minute),
				Priority:  value_objects.PriorityMedium,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func completed(t *task.Task, now time.Time) (Notification, bool) {
	at := t.CompletedAt()
	if at == nil || now.Sub(*at) > completedWindow || at.After(now) {
		return Notification{}, false
	}
	return Notification{
		ID:        "completed-" + t.ID().String(),
		Type:      TypeCompleted,
		Title:     "Task Completed",
		Message:   fmt.Sprintf("Great job! You completed %q", t.Title()),
		Timestamp: *at,
		TaskID:    t.ID(),
		Priority:  value_objects.PriorityLow,
	}, true
}

func dueMessage(title string, days int) string {
	if days == 0 {
		return fmt.Sprintf("%q is due today", title)
	}
	return fmt.Sprintf("%q is due in %s", title, plural(days, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
