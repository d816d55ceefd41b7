package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of domain.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, s *domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestService_Get_DefaultsOnFirstRun(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(nil, nil).Once()
	svc := NewService(repo, observability.DiscardLogger())

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Defaults(), s)

	// Cached after the first load.
	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Set(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Settings) bool {
		return s.Preferences.WeekStart == "monday"
	})).Return(nil).Once()
	svc := NewService(repo, observability.DiscardLogger())
	ctx := context.Background()

	s, err := svc.Set(ctx, "preferences.week_start", "monday")

	require.NoError(t, err)
	assert.Equal(t, "monday", s.Preferences.WeekStart)
	assert.Equal(t, time.Monday, svc.WeekStart(ctx))
	repo.AssertExpectations(t)
}

func TestService_Set_InvalidValueIsNotSaved(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(nil, nil)
	svc := NewService(repo, observability.DiscardLogger())

	_, err := svc.Set(context.Background(), "preferences.theme", "neon")

	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Reset(t *testing.T) {
	stored := domain.Defaults()
	stored.Preferences.Theme = "dark"
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(&stored, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(repo, observability.DiscardLogger())

	s, err := svc.Reset(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "system", s.Preferences.Theme)
	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "system", got.Preferences.Theme)
}

func TestService_PreferencesFallBackToDefaults(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("disk on fire"))
	svc := NewService(repo, observability.DiscardLogger())
	ctx := context.Background()

	assert.Equal(t, value_objects.PriorityMedium, svc.DefaultPriority(ctx))
	assert.Equal(t, time.Sunday, svc.WeekStart(ctx))
	assert.Equal(t, notification.AllCategories(), svc.NotificationCategories(ctx))
	assert.Equal(t, time.UTC, svc.Location(ctx))
}

func TestService_PreferencesFromStoredSettings(t *testing.T) {
	stored := domain.Defaults()
	stored.Preferences.DefaultPriority = "high"
	stored.Notifications.Completions = false
	repo := new(MockRepository)
	repo.On("Load", mock.Anything).Return(&stored, nil)
	svc := NewService(repo, observability.DiscardLogger())
	ctx := context.Background()

	assert.Equal(t, value_objects.PriorityHigh, svc.DefaultPriority(ctx))
	assert.False(t, svc.NotificationCategories(ctx).Completions)
}
