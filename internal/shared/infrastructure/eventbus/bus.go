package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// InProcessEventBus delivers domain events synchronously to registered
// consumers. Consumer failures are logged, never returned to the
// publisher: the store has already accepted the change.
type InProcessEventBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	metrics  observability.Metrics
	mu       sync.Mutex
}

// NewInProcessEventBus creates a bus. metrics may be nil.
func NewInProcessEventBus(logger *slog.Logger, metrics observability.Metrics) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &InProcessEventBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
		metrics:  metrics,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish wraps each domain event in a ConsumedEvent and dispatches it.
// Only a payload that cannot be encoded is reported as an error.
func (b *InProcessEventBus) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, event := range events {
		consumed, err := ToConsumedEvent(ctx, event)
		if err != nil {
			return err
		}
		b.PublishConsumedEvent(ctx, consumed)
	}
	return nil
}

// PublishConsumedEvent dispatches an already wrapped event.
func (b *InProcessEventBus) PublishConsumedEvent(ctx context.Context, event *ConsumedEvent) {
	// Consumers run one event at a time so they never see interleaved changes.
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	err := b.registry.Dispatch(ctx, event)
	duration := time.Since(start)
	b.metrics.Counter(observability.MetricEventsPublished, 1, observability.T("routing_key", event.RoutingKey))

	if err != nil {
		b.logger.ErrorContext(ctx, "event dispatch failed",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
			observability.DurationKey, duration.Milliseconds(),
			"error", err,
		)
		return
	}
	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		observability.DurationKey, duration.Milliseconds(),
	)
}

// Registry returns the underlying consumer registry.
func (b *InProcessEventBus) Registry() *ConsumerRegistry {
	return b.registry
}

// ToConsumedEvent builds the bus envelope for event. Metadata already on
// the event wins; otherwise the correlation ID is taken from ctx.
func ToConsumedEvent(ctx context.Context, event domain.DomainEvent) (*ConsumedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event.RoutingKey(), err)
	}

	meta := event.Metadata()
	if meta.CorrelationID == "" {
		meta.CorrelationID = observability.CorrelationIDFromContext(ctx)
	}
	if meta.CausationID == "" {
		meta.CausationID = observability.RequestIDFromContext(ctx)
	}

	return &ConsumedEvent{
		EventID:       event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		RoutingKey:    event.RoutingKey(),
		OccurredAt:    event.OccurredAt(),
		Payload:       payload,
		Metadata: EventMetadata{
			CorrelationID: meta.CorrelationID,
			CausationID:   meta.CausationID,
		},
	}, nil
}
