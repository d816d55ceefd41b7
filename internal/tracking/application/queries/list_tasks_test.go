package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func listFixtures(t *testing.T) []*task.Task {
	return []*task.Task{
		build(t, fixture{title: "Write report", description: "quarterly numbers", priority: value_objects.PriorityHigh, status: task.StatusPending, deadline: "2025-01-18", createdAt: now.Add(-3 * time.Hour)}),
		build(t, fixture{title: "Buy groceries", priority: value_objects.PriorityLow, status: task.StatusCompleted, deadline: "2025-01-15", createdAt: now.Add(-5 * time.Hour)}),
		build(t, fixture{title: "Plan trip", priority: value_objects.PriorityMedium, status: task.StatusInProgress, deadline: "2025-01-25", createdAt: now.Add(-1 * time.Hour)}),
		build(t, fixture{title: "Read book", description: "a REPORT on history", priority: value_objects.PriorityLow, status: task.StatusPending, createdAt: now.Add(-2 * time.Hour)}),
	}
}

func TestListTasksHandler_Handle(t *testing.T) {
	ctx := context.Background()
	clock := domain.FixedClock{At: now}

	tests := []struct {
		name  string
		query ListTasksQuery
		want  []string
	}{
		{"all in collection order", ListTasksQuery{}, []string{"Write report", "Buy groceries", "Plan trip", "Read book"}},
		{"search title and description", ListTasksQuery{Search: "report"}, []string{"Write report", "Read book"}},
		{"pending includes in progress", ListTasksQuery{Filter: "pending"}, []string{"Write report", "Plan trip", "Read book"}},
		{"completed", ListTasksQuery{Filter: "completed"}, []string{"Buy groceries"}},
		{"overdue excludes completed", ListTasksQuery{Filter: "overdue"}, []string{"Write report"}},
		{"priority", ListTasksQuery{Priority: "low"}, []string{"Buy groceries", "Read book"}},
		{"priority all", ListTasksQuery{Priority: "all"}, []string{"Write report", "Buy groceries", "Plan trip", "Read book"}},
		{"combined", ListTasksQuery{Search: "report", Filter: "pending", Priority: "low"}, []string{"Read book"}},
		{"sort deadline puts missing last", ListTasksQuery{Sort: "deadline"}, []string{"Buy groceries", "Write report", "Plan trip", "Read book"}},
		{"sort priority", ListTasksQuery{Sort: "priority"}, []string{"Write report", "Plan trip", "Buy groceries", "Read book"}},
		{"sort created", ListTasksQuery{Sort: "created"}, []string{"Buy groceries", "Write report", "Read book", "Plan trip"}},
		{"sort title", ListTasksQuery{Sort: "title"}, []string{"Buy groceries", "Plan trip", "Read book", "Write report"}},
		{"limit", ListTasksQuery{Limit: 2}, []string{"Write report", "Buy groceries"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewListTasksHandler(repoWith(listFixtures(t)...), clock)

			result, err := handler.Handle(ctx, tt.query)

			require.NoError(t, err)
			assert.Equal(t, tt.want, titlesOf(result.Tasks))
			assert.Equal(t, 4, result.Total)
		})
	}
}

func TestListTasksHandler_CountsCoverWholeCollection(t *testing.T) {
	handler := NewListTasksHandler(repoWith(listFixtures(t)...), domain.FixedClock{At: now})

	result, err := handler.Handle(context.Background(), ListTasksQuery{Search: "nothing matches"})

	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.NotNil(t, result.Tasks)
	assert.Equal(t, map[Filter]int{
		FilterAll:       4,
		FilterPending:   3,
		FilterCompleted: 1,
		FilterOverdue:   1,
	}, result.Counts)
}

func TestListTasksHandler_Errors(t *testing.T) {
	ctx := context.Background()
	clock := domain.FixedClock{At: now}

	_, err := NewListTasksHandler(new(MockTaskRepository), clock).Handle(ctx, ListTasksQuery{Filter: "archived"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = NewListTasksHandler(new(MockTaskRepository), clock).Handle(ctx, ListTasksQuery{Priority: "urgent"})
	assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)

	_, err = NewListTasksHandler(new(MockTaskRepository), clock).Handle(ctx, ListTasksQuery{Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	repo := new(MockTaskRepository)
	repo.On("FindAll", mock.Anything).Return(nil, errors.New("unavailable"))
	_, err = NewListTasksHandler(repo, clock).Handle(ctx, ListTasksQuery{})
	assert.EqualError(t, err, "unavailable")
}
