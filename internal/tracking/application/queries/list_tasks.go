package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/summary"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

var (
	ErrInvalidFilter = errors.New("invalid filter, use all, pending, completed or overdue")
	ErrInvalidSort   = errors.New("invalid sort, use created, deadline, priority or title")
)

// Filter narrows the task list by status.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterOverdue   Filter = "overdue"
)

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue}
}

// ParseFilter parses a filter name. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterCompleted, FilterOverdue:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// SortKey orders the task list. SortNone keeps collection order.
type SortKey string

const (
	SortNone     SortKey = ""
	SortCreated  SortKey = "created"
	SortDeadline SortKey = "deadline"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
)

// ListTasksQuery selects tasks for the list view.
type ListTasksQuery struct {
	Search   string
	Filter   string
	Priority string
	Sort     string
	Limit    int
}

func (ListTasksQuery) QueryName() string { return "task.list" }

// ListTasksResult holds the matching tasks and the per-filter counts over
// the whole collection.
type ListTasksResult struct {
	Tasks  []TaskDTO      `json:"tasks"`
	Counts map[Filter]int `json:"counts"`
	Total  int            `json:"total"`
}

// ListTasksHandler handles ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	clock    domain.Clock
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository, clock domain.Clock) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, clock: clock}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) (*ListTasksResult, error) {
	filter, err := ParseFilter(query.Filter)
	if err != nil {
		return nil, err
	}
	var priority value_objects.Priority
	if p := strings.TrimSpace(query.Priority); p != "" && !strings.EqualFold(p, "all") {
		if priority, err = value_objects.ParsePriority(p); err != nil {
			return nil, err
		}
	}
	sortKey := SortKey(strings.ToLower(strings.TrimSpace(query.Sort)))
	switch sortKey {
	case SortNone, SortCreated, SortDeadline, SortPriority, SortTitle:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, query.Sort)
	}

	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()
	today := value_objects.DateOf(now)
	search := strings.ToLower(strings.TrimSpace(query.Search))

	counts := make(map[Filter]int, 4)
	for _, f := range Filters() {
		counts[f] = 0
	}
	matched := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		for _, f := range Filters() {
			if matchesFilter(t, f, today) {
				counts[f]++
			}
		}
		if !matchesSearch(t, search) || !matchesFilter(t, filter, today) {
			continue
		}
		if priority.IsValid() && t.Priority() != priority {
			continue
		}
		matched = append(matched, t)
	}

	sortTasks(matched, sortKey)
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}

	return &ListTasksResult{
		Tasks:  NewTaskDTOs(matched, now),
		Counts: counts,
		Total:  len(tasks),
	}, nil
}

func matchesSearch(t *task.Task, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title()), search) ||
		strings.Contains(strings.ToLower(t.Description()), search)
}

func matchesFilter(t *task.Task, f Filter, today value_objects.Date) bool {
	switch f {
	case FilterPending:
		return !t.IsCompleted()
	case FilterCompleted:
		return t.IsCompleted()
	case FilterOverdue:
		return summary.IsOverdue(t, today)
	default:
		return true
	}
}

// sortTasks orders tasks stably; tasks without a deadline sort last.
func sortTasks(tasks []*task.Task, key SortKey) {
	var less func(a, b *task.Task) bool
	switch key {
	case SortCreated:
		less = func(a, b *task.Task) bool { return a.CreatedAt().Before(b.CreatedAt()) }
	case SortDeadline:
		less = func(a, b *task.Task) bool {
			da, okA := a.Deadline()
			db, okB := b.Deadline()
			if okA != okB {
				return okA
			}
			return da.Before(db)
		}
	case SortPriority:
		less = func(a, b *task.Task) bool { return a.Priority().Weight() > b.Priority().Weight() }
	case SortTitle:
		less = func(a, b *task.Task) bool { return strings.ToLower(a.Title()) < strings.ToLower(b.Title()) }
	default:
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
}
