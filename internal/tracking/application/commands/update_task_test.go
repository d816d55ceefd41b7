package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskHandler_Handle(t *testing.T) {
	ctx := context.Background()
	clock := domain.FixedClock{At: now}

	tests := []struct {
		name   string
		cmd    func(existing *task.Task) UpdateTaskCommand
		verify func(t *testing.T, result *TaskResult)
		keys   []string
	}{
		{
			name: "updates title and priority",
			cmd: func(existing *task.Task) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: existing.ID(), Title: stringPtr("Renamed"), Priority: stringPtr("high")}
			},
			verify: func(t *testing.T, result *TaskResult) {
				assert.Equal(t, "Renamed", result.Task.Title)
				assert.Equal(t, "high", result.Task.Priority)
			},
			keys: []string{task.RoutingKeyUpdated},
		},
		{
			name: "sets and clears deadline",
			cmd: func(existing *task.Task) UpdateTaskCommand {
				existing.SetDeadline(value_objects.NewDate(2025, time.February, 1), now)
				return UpdateTaskCommand{TaskID: existing.ID(), Deadline: stringPtr("")}
			},
			verify: func(t *testing.T, result *TaskResult) {
				assert.Empty(t, result.Task.Deadline)
			},
			keys: []string{task.RoutingKeyUpdated},
		},
		{
			name: "status change stamps completedAt",
			cmd: func(existing *task.Task) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: existing.ID(), Status: stringPtr("completed")}
			},
			verify: func(t *testing.T, result *TaskResult) {
				assert.Equal(t, "completed", result.Task.Status)
				require.NotNil(t, result.Task.CompletedAt)
				assert.Equal(t, now, *result.Task.CompletedAt)
			},
			keys: []string{task.RoutingKeyCompleted, task.RoutingKeyUpdated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := existingTask(t, "Original", task.StatusPending)
			cmd := tt.cmd(existing)
			repo := new(MockTaskRepository)
			pub := new(MockEventPublisher)
			repo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)
			repo.On("Save", mock.Anything, existing).Return(nil)
			pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

			result, err := NewUpdateTaskHandler(repo, pub, clock).Handle(ctx, cmd)

			require.NoError(t, err)
			require.True(t, result.Found)
			tt.verify(t, result)
			repo.AssertExpectations(t)
			assert.Equal(t, tt.keys, pub.routingKeys(0))
		})
	}
}

func TestUpdateTaskHandler_ReopenClearsCompletedAt(t *testing.T) {
	existing := existingTask(t, "Done", task.StatusCompleted)
	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)
	repo.On("Save", mock.Anything, existing).Return(nil)

	result, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
		UpdateTaskCommand{TaskID: existing.ID(), Status: stringPtr("in-progress")})

	require.NoError(t, err)
	assert.Equal(t, "in-progress", result.Task.Status)
	assert.Nil(t, result.Task.CompletedAt)
}

func TestUpdateTaskHandler_UnknownIDIsNoop(t *testing.T) {
	id := uuid.New()
	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, task.ErrTaskNotFound)

	result, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
		UpdateTaskCommand{TaskID: id, Title: stringPtr("x")})

	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Nil(t, result.Task)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateTaskHandler_NoFieldsDoesNotSave(t *testing.T) {
	existing := existingTask(t, "Same", task.StatusPending)
	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)

	result, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
		UpdateTaskCommand{TaskID: existing.ID()})

	require.NoError(t, err)
	assert.True(t, result.Found)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateTaskHandler_Dependencies(t *testing.T) {
	a := existingTask(t, "A", task.StatusPending)
	b := existingTask(t, "B", task.StatusPending, a.ID())

	t.Run("rejects a cycle", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("FindByID", mock.Anything, a.ID()).Return(a.Clone(), nil)
		repo.On("FindAll", mock.Anything).Return([]*task.Task{a, b}, nil)

		_, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
			UpdateTaskCommand{TaskID: a.ID(), Dependencies: &[]uuid.UUID{b.ID()}})

		assert.ErrorIs(t, err, dependency.ErrDependencyCycle)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects self reference", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("FindByID", mock.Anything, b.ID()).Return(b.Clone(), nil)
		repo.On("FindAll", mock.Anything).Return([]*task.Task{a, b}, nil)

		_, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
			UpdateTaskCommand{TaskID: b.ID(), Dependencies: &[]uuid.UUID{b.ID()}})

		assert.ErrorIs(t, err, task.ErrSelfDependency)
	})

	t.Run("clears dependencies", func(t *testing.T) {
		repo := new(MockTaskRepository)
		repo.On("FindByID", mock.Anything, b.ID()).Return(b.Clone(), nil)
		repo.On("FindAll", mock.Anything).Return([]*task.Task{a, b}, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		result, err := NewUpdateTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(),
			UpdateTaskCommand{TaskID: b.ID(), Dependencies: &[]uuid.UUID{}})

		require.NoError(t, err)
		assert.Empty(t, result.Task.Dependencies)
	})
}
