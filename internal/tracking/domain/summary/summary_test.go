package summary_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/summary"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 20, 15, 30, 0, 0, time.UTC)

func mustTask(t *testing.T, title string, status task.Status, deadline string) *task.Task {
	t.Helper()
	snap := task.Snapshot{
		ID:        uuid.New(),
		Title:     title,
		Priority:  value_objects.PriorityMedium,
		Status:    status,
		CreatedAt: now.Add(-72 * time.Hour),
	}
	if deadline != "" {
		d, err := value_objects.ParseDate(deadline)
		require.NoError(t, err)
		snap.Deadline = d
	}
	if status == task.StatusCompleted {
		at := now.Add(-time.Hour)
		snap.CompletedAt = &at
	}
	tsk, err := task.Rehydrate(snap)
	require.NoError(t, err)
	return tsk
}

func TestCompute(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "yesterday", task.StatusPending, "2025-01-19"),
		mustTask(t, "today", task.StatusInProgress, "2025-01-20"),
		mustTask(t, "tomorrow", task.StatusPending, "2025-01-21"),
		mustTask(t, "done late", task.StatusCompleted, "2025-01-10"),
		mustTask(t, "no deadline", task.StatusPending, ""),
	}

	stats := summary.Compute(tasks, now)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 4, stats.Pending)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.DueToday)
	assert.InDelta(t, 0.2, stats.CompletionRate, 1e-9)
}

func TestCompute_Empty(t *testing.T) {
	stats := summary.Compute(nil, now)

	assert.Equal(t, summary.Stats{}, stats)
	assert.Zero(t, stats.CompletionRate)
}

func TestOverdueAndDueToday_AreDisjoint(t *testing.T) {
	// A deadline of today is not overdue until the whole day has elapsed.
	lateEvening := time.Date(2025, 1, 20, 23, 59, 0, 0, time.UTC)
	tasks := []*task.Task{
		mustTask(t, "today", task.StatusPending, "2025-01-20"),
		mustTask(t, "past", task.StatusPending, "2025-01-15"),
	}

	due := summary.DueToday(tasks, lateEvening)
	overdue := summary.Overdue(tasks, lateEvening)

	require.Len(t, due, 1)
	require.Len(t, overdue, 1)
	assert.Equal(t, "today", due[0].Title())
	assert.Equal(t, "past", overdue[0].Title())
}

func TestCompletedTasksAreNeverOverdueOrDue(t *testing.T) {
	tasks := []*task.Task{
		mustTask(t, "done past", task.StatusCompleted, "2025-01-01"),
		mustTask(t, "done today", task.StatusCompleted, "2025-01-20"),
	}

	assert.Empty(t, summary.Overdue(tasks, now))
	assert.Empty(t, summary.DueToday(tasks, now))
}

func TestToday_FollowsLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20 Jan 20:00 UTC is already 21 Jan in Tokyo.
	instant := time.Date(2025, 1, 20, 20, 0, 0, 0, time.UTC)
	tasks := []*task.Task{mustTask(t, "due 20th", task.StatusPending, "2025-01-20")}

	assert.Len(t, summary.DueToday(tasks, instant), 1)
	assert.Len(t, summary.Overdue(tasks, instant.In(tokyo)), 1)
}
