package queries

import (
	"context"
	"testing"
	"time"

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

func repoWith(tasks ...*task.Task) *MockTaskRepository {
	repo := new(MockTaskRepository)
	repo.On("FindAll", mock.Anything).Return(tasks, nil)
	return repo
}

type staticState struct {
	flags notification.Flags
}

func (s staticState) MarkRead(context.Context, ...string) error { return nil }
func (s staticState) Dismiss(context.Context, string) error     { return nil }
func (s staticState) Flags(context.Context) (notification.Flags, error) {
	return s.flags, nil
}

type fixture struct {
	title       string
	description string
	priority    value_objects.Priority
	status      task.Status
	deadline    string
	createdAt   time.Time
	completedAt time.Time
	deps        []uuid.UUID
}

func build(t *testing.T, f fixture) *task.Task {
	t.Helper()
	snap := task.Snapshot{
		ID:           uuid.New(),
		Title:        f.title,
		Description:  f.description,
		Priority:     f.priority,
		Status:       f.status,
		CreatedAt:    f.createdAt,
		Dependencies: f.deps,
	}
	if snap.Priority == 0 {
		snap.Priority = value_objects.PriorityMedium
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = now.Add(-24 * time.Hour)
	}
	if f.deadline != "" {
		d, err := value_objects.ParseDate(f.deadline)
		require.NoError(t, err)
		snap.Deadline = d
	}
	if f.status == task.StatusCompleted {
		at := f.completedAt
		if at.IsZero() {
			at = now.Add(-72 * time.Hour)
		}
		snap.CompletedAt = &at
	}
	tsk, err := task.Rehydrate(snap)
	require.NoError(t, err)
	return tsk
}

func titlesOf(dtos []TaskDTO) []string {
	out := make([]string, len(dtos))
	for i, d := range dtos {
		out[i] = d.Title
	}
	return out
}
