package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

// MockTaskRepository is a mock implementation of task.Repository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of application.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// routingKeys extracts the routing keys of the published events of call i.
func (m *MockEventPublisher) routingKeys(i int) []string {
	events := m.Calls[i].Arguments.Get(1).([]domain.DomainEvent)
	keys := make([]string, len(events))
	for j, e := range events {
		keys[j] = e.RoutingKey()
	}
	return keys
}

// MockStateStore is a mock implementation of notification.StateStore.
type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) MarkRead(ctx context.Context, ids ...string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockStateStore) Dismiss(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStateStore) Flags(ctx context.Context) (notification.Flags, error) {
	args := m.Called(ctx)
	return args.Get(0).(notification.Flags), args.Error(1)
}

type fixedPreferences struct {
	priority value_objects.Priority
}

func (p fixedPreferences) DefaultPriority(context.Context) value_objects.Priority { return p.priority }
func (fixedPreferences) WeekStart(context.Context) time.Weekday                 { return time.Monday }
func (fixedPreferences) NotificationCategories(context.Context) notification.Categories {
	return notification.AllCategories()
}

func existingTask(t *testing.T, title string, status task.Status, deps ...uuid.UUID) *task.Task {
	t.Helper()
	snap := task.Snapshot{
		ID:           uuid.New(),
		Title:        title,
		Priority:     value_objects.PriorityMedium,
		Status:       status,
		CreatedAt:    now.Add(-48 * time.Hour),
		Dependencies: deps,
	}
	if status == task.StatusCompleted {
		at := now.Add(-time.Hour)
		snap.CompletedAt = &at
	}
	tsk, err := task.Rehydrate(snap)
	require.NoError(t, err)
	return tsk
}

func stringPtr(s string) *string { return &s }
