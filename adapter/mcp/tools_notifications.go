package mcp

import (
	"context"

	"github.com/felixgeelhaar/mcp-go"
	sharedApplication "github.com/felixgeelhaar/taskflow/internal/shared/application"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/commands"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

type notificationListInput struct {
	UnreadOnly bool `json:"unread_only,omitempty"`
}

type notificationReadInput struct {
	ID  string `json:"id,omitempty"`
	All bool   `json:"all,omitempty"`
}

type notificationIDInput struct {
	ID string `json:"id" jsonschema:"required"`
}

func registerNotificationTools(srv *mcp.Server, h handlers) {
	srv.Tool("notifications.list").
		Description("List notifications derived from the tasks, newest first, with the unread count").
		Handler(h.listNotifications)

	srv.Tool("notifications.read").
		Description("Mark one notification (id) or every notification (all=true) as read").
		Handler(h.readNotifications)

	srv.Tool("notifications.dismiss").
		Description("Hide a notification").
		Handler(h.dismissNotification)
}

func (h handlers) listNotifications(ctx context.Context, input notificationListInput) (*queries.NotificationsDTO, error) {
	query := queries.ListNotificationsQuery{UnreadOnly: input.UnreadOnly}
	return sharedApplication.RunQuery(ctx, h.app.Logger, h.metrics(), query, h.app.ListNotificationsHandler.Handle)
}

func (h handlers) readNotifications(ctx context.Context, input notificationReadInput) (*commands.NotificationResult, error) {
	if input.All {
		return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.MarkAllNotificationsReadCommand{}, h.app.NotificationHandler.MarkAllRead)
	}
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.MarkNotificationReadCommand{ID: input.ID}, h.app.NotificationHandler.MarkRead)
}

func (h handlers) dismissNotification(ctx context.Context, input notificationIDInput) (*commands.NotificationResult, error) {
	return sharedApplication.RunCommand(ctx, h.app.Logger, h.metrics(), commands.DismissNotificationCommand{ID: input.ID}, h.app.NotificationHandler.Dismiss)
}
