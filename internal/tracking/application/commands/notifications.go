package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/notification"
)

var ErrEmptyNotificationID = errors.New("notification id is required")

// MarkNotificationReadCommand marks one notification as read.
type MarkNotificationReadCommand struct {
	ID string
}

func (MarkNotificationReadCommand) CommandName() string { return "notifications.read" }

// MarkAllNotificationsReadCommand marks every visible notification as read.
type MarkAllNotificationsReadCommand struct{}

func (MarkAllNotificationsReadCommand) CommandName() string { return "notifications.read_all" }

// DismissNotificationCommand hides a notification.
type DismissNotificationCommand struct {
	ID string
}

func (DismissNotificationCommand) CommandName() string { return "notifications.dismiss" }

// NotificationResult reports how many notifications changed.
type NotificationResult struct {
	Affected int `json:"affected"`
}

// NotificationHandler handles the notification state commands. Flags are
// keyed by id, so an id that is not currently generated is still recorded
// and applies if it appears later.
type NotificationHandler struct {
	state     notification.StateStore
	projector *queries.NotificationProjector
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(state notification.StateStore, projector *queries.NotificationProjector) *NotificationHandler {
	return &NotificationHandler{state: state, projector: projector}
}

// MarkRead executes the MarkNotificationReadCommand.
func (h *NotificationHandler) MarkRead(ctx context.Context, cmd MarkNotificationReadCommand) (*NotificationResult, error) {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return nil, ErrEmptyNotificationID
	}
	if err := h.state.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return &NotificationResult{Affected: 1}, nil
}

// MarkAllRead executes the MarkAllNotificationsReadCommand.
func (h *NotificationHandler) MarkAllRead(ctx context.Context, _ MarkAllNotificationsReadCommand) (*NotificationResult, error) {
	list, err := h.projector.Project(ctx)
	if err != nil {
		return nil, err
	}
	unread := make([]string, 0, len(list))
	for _, n := range list {
		if !n.Read {
			unread = append(unread, n.ID)
		}
	}
	if err := h.state.MarkRead(ctx, unread...); err != nil {
		return nil, err
	}
	return &NotificationResult{Affected: len(unread)}, nil
}

// Dismiss executes the DismissNotificationCommand.
func (h *NotificationHandler) Dismiss(ctx context.Context, cmd DismissNotificationCommand) (*NotificationResult, error) {
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return nil, ErrEmptyNotificationID
	}
	if err := h.state.Dismiss(ctx, id); err != nil {
		return nil, err
	}
	return &NotificationResult{Affected: 1}, nil
}
