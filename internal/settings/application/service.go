package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// Service manages user settings. It also supplies the preferences the task
// views read, falling back to defaults when the store cannot be read.
type Service struct {
	repo   domain.Repository
	logger *slog.Logger

	mu     sync.RWMutex
	cached *domain.Settings
}

// NewService creates a settings service.
func NewService(repo domain.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the current settings, or the defaults if none were saved.
func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if loaded == nil {
		d := domain.Defaults()
		loaded = &d
	}

	s.mu.Lock()
	s.cached = loaded
	s.mu.Unlock()
	return *loaded, nil
}

// Set updates one setting and saves the document.
func (s *Service) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := current.Set(key, value); err != nil {
		return domain.Settings{}, err
	}
	if err := s.repo.Save(ctx, &current); err != nil {
		return domain.Settings{}, err
	}

	s.mu.Lock()
	s.cached = &current
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "setting updated", "key", key)
	return current, nil
}

// Reset restores and saves the defaults.
func (s *Service) Reset(ctx context.Context) (domain.Settings, error) {
	d := domain.Defaults()
	if err := s.repo.Save(ctx, &d); err != nil {
		return domain.Settings{}, err
	}
	s.mu.Lock()
	s.cached = &d
	s.mu.Unlock()
	return d, nil
}

func (s *Service) current(ctx context.Context) domain.Settings {
	settings, err := s.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings unavailable, using defaults", "error", err)
		return domain.Defaults()
	}
	return settings
}

// DefaultPriority returns the priority given to new tasks without one.
func (s *Service) DefaultPriority(ctx context.Context) value_objects.Priority {
	return s.current(ctx).Priority()
}

// WeekStart returns the first day of calendar weeks.
func (s *Service) WeekStart(ctx context.Context) time.Weekday {
	return s.current(ctx).FirstWeekday()
}

// NotificationCategories returns the enabled notification categories.
func (s *Service) NotificationCategories(ctx context.Context) notification.Categories {
	return s.current(ctx).Categories()
}

// Location returns the configured time zone.
func (s *Service) Location(ctx context.Context) *time.Location {
	return s.current(ctx).Location()
}
