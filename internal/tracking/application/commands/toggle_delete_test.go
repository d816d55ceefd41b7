package commands

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestToggleCompleteHandler_Handle(t *testing.T) {
	clock := domain.FixedClock{At: now}

	tests := []struct {
		name       string
		status     task.Status
		wantStatus string
		wantKey    string
	}{
		{"pending becomes completed", task.StatusPending, "completed", task.RoutingKeyCompleted},
		{"in progress becomes completed", task.StatusInProgress, "completed", task.RoutingKeyCompleted},
		{"completed becomes pending", task.StatusCompleted, "pending", task.RoutingKeyReopened},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := existingTask(t, "Toggle me", tt.status)
			repo := new(MockTaskRepository)
			pub := new(MockEventPublisher)
			repo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)
			repo.On("Save", mock.Anything, existing).Return(nil)
			pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

			result, err := NewToggleCompleteHandler(repo, pub, clock).Handle(context.Background(), ToggleCompleteCommand{TaskID: existing.ID()})

			require.NoError(t, err)
			assert.True(t, result.Found)
			assert.Equal(t, tt.wantStatus, result.Task.Status)
			assert.Equal(t, tt.wantStatus == "completed", result.Task.CompletedAt != nil)
			assert.Equal(t, []string{tt.wantKey}, pub.routingKeys(0))
		})
	}
}

func TestToggleCompleteHandler_UnknownID(t *testing.T) {
	id := uuid.New()
	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, task.ErrTaskNotFound)

	result, err := NewToggleCompleteHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(), ToggleCompleteCommand{TaskID: id})

	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestDeleteTaskHandler_Handle(t *testing.T) {
	existing := existingTask(t, "Remove me", task.StatusPending)
	repo := new(MockTaskRepository)
	pub := new(MockEventPublisher)
	repo.On("FindByID", mock.Anything, existing.ID()).Return(existing, nil)
	repo.On("Delete", mock.Anything, existing.ID()).Return(nil)
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := NewDeleteTaskHandler(repo, pub, domain.FixedClock{At: now}).Handle(context.Background(), DeleteTaskCommand{TaskID: existing.ID()})

	require.NoError(t, err)
	assert.True(t, result.Found)
	repo.AssertExpectations(t)
	assert.Equal(t, []string{task.RoutingKeyDeleted}, pub.routingKeys(0))
}

func TestDeleteTaskHandler_UnknownID(t *testing.T) {
	id := uuid.New()
	repo := new(MockTaskRepository)
	repo.On("FindByID", mock.Anything, id).Return(nil, task.ErrTaskNotFound)

	result, err := NewDeleteTaskHandler(repo, nil, domain.FixedClock{At: now}).Handle(context.Background(), DeleteTaskCommand{TaskID: id})

	require.NoError(t, err)
	assert.False(t, result.Found)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
