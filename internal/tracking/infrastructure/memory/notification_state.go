package memory

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
)

// NotificationState implements notification.StateStore in memory.
type NotificationState struct {
	mu        sync.RWMutex
	read      map[string]bool
	dismissed map[string]bool
}

// NewNotificationState creates empty notification state.
func NewNotificationState() *NotificationState {
	return &NotificationState{
		read:      make(map[string]bool),
		dismissed: make(map[string]bool),
	}
}

// MarkRead flags the given ids as read.
func (s *NotificationState) MarkRead(ctx context.Context, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.read[id] = true
	}
	return nil
}

// Dismiss hides id from future projections.
func (s *NotificationState) Dismiss(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[id] = true
	return nil
}

// Flags returns a copy of the current flags.
func (s *NotificationState) Flags(ctx context.Context) (notification.Flags, error) {
	if err := ctx.Err(); err != nil {
		return notification.Flags{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	flags := notification.NewFlags()
	for id := range s.read {
		flags.Read[id] = true
	}
	for id := range s.dismissed {
		flags.Dismissed[id] = true
	}
	return flags, nil
}
