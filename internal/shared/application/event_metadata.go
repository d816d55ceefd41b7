package application

import (
	"context"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/google/uuid"
)

// EventPublisher delivers domain events after a change has been accepted.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.DomainEvent) error
}

type metadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates command-scoped metadata. The correlation ID is
// taken from ctx when present so events join the caller's trace.
func NewEventMetadata(ctx context.Context) domain.EventMetadata {
	correlationID := observability.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	return domain.EventMetadata{
		CorrelationID: correlationID,
		CausationID:   uuid.New().String(),
	}
}

// ApplyEventMetadata sets metadata on the events that accept it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(metadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}

// PublishEvents stamps events with metadata for ctx and publishes them.
// A nil publisher drops them.
func PublishEvents(ctx context.Context, publisher EventPublisher, events []domain.DomainEvent) error {
	if publisher == nil || len(events) == 0 {
		return nil
	}
	ApplyEventMetadata(events, NewEventMetadata(ctx))
	return publisher.Publish(ctx, events...)
}
