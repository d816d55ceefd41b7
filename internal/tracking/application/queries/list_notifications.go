package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// ListNotificationsQuery requests the current notifications.
type ListNotificationsQuery struct {
	UnreadOnly bool
}

func (ListNotificationsQuery) QueryName() string { return "notifications.list" }

// NotificationDTO is the read model of a notification.
type NotificationDTO struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	Read      bool       `json:"read"`
	Priority  string     `json:"priority"`
}

// NotificationsDTO is the notification view.
type NotificationsDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	Unread        int               `json:"unread"`
}

// NotificationProjector derives notifications from the store and applies
// the stored read and dismissed flags.
type NotificationProjector struct {
	taskRepo task.Repository
	state    notification.StateStore
	clock    domain.Clock
	prefs    Preferences
}

// NewNotificationProjector creates a NotificationProjector.
func NewNotificationProjector(taskRepo task.Repository, state notification.StateStore, clock domain.Clock, prefs Preferences) *NotificationProjector {
	if prefs == nil {
		prefs = DefaultPreferences{}
	}
	return &NotificationProjector{taskRepo: taskRepo, state: state, clock: clock, prefs: prefs}
}

// Project returns the visible notifications, newest first.
func (p *NotificationProjector) Project(ctx context.Context) ([]notification.Notification, error) {
	tasks, err := p.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	flags, err := p.state.Flags(ctx)
	if err != nil {
		return nil, err
	}
	generated := notification.Generate(tasks, p.clock.Now(), p.prefs.NotificationCategories(ctx))
	return notification.Apply(generated, flags), nil
}

// ListNotificationsHandler handles ListNotificationsQuery.
type ListNotificationsHandler struct {
	projector *NotificationProjector
}

// NewListNotificationsHandler creates a new ListNotificationsHandler.
func NewListNotificationsHandler(projector *NotificationProjector) *ListNotificationsHandler {
	return &ListNotificationsHandler{projector: projector}
}

// Handle executes the ListNotificationsQuery. Unread always counts every
// visible unread notification, even when only unread ones are listed.
func (h *ListNotificationsHandler) Handle(ctx context.Context, query ListNotificationsQuery) (*NotificationsDTO, error) {
	list, err := h.projector.Project(ctx)
	if err != nil {
		return nil, err
	}

	dto := &NotificationsDTO{
		Notifications: make([]NotificationDTO, 0, len(list)),
		Unread:        notification.UnreadCount(list),
	}
	for _, n := range list {
		if query.UnreadOnly && n.Read {
			continue
		}
		dto.Notifications = append(dto.Notifications, newNotificationDTO(n))
	}
	return dto, nil
}

func newNotificationDTO(n notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		Read:      n.Read,
		Priority:  n.Priority.String(),
	}
	if n.HasTask() {
		id := n.TaskID
		dto.TaskID = &id
	}
	return dto
}
