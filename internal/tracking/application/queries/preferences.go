package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// Preferences supplies the user settings the task views depend on.
type Preferences interface {
	DefaultPriority(ctx context.Context) value_objects.Priority
	WeekStart(ctx context.Context) time.Weekday
	NotificationCategories(ctx context.Context) notification.Categories
}

// DefaultPreferences is used when no settings are configured.
type DefaultPreferences struct{}

func (DefaultPreferences) DefaultPriority(context.Context) value_objects.Priority {
	return value_objects.PriorityMedium
}

func (DefaultPreferences) WeekStart(context.Context) time.Weekday {
	return time.Sunday
}

func (DefaultPreferences) NotificationCategories(context.Context) notification.Categories {
	return notification.AllCategories()
}
