package subscribers

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// TaskActivitySubscriber counts task events and reports the dependents a
// completion unblocks.
type TaskActivitySubscriber struct {
	taskRepo task.Repository
	metrics  observability.Metrics
	logger   *slog.Logger
}

// NewTaskActivitySubscriber creates a new task activity subscriber.
func NewTaskActivitySubscriber(taskRepo task.Repository, metrics observability.Metrics, logger *slog.Logger) *TaskActivitySubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &TaskActivitySubscriber{
		taskRepo: taskRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// EventTypes returns the event types this subscriber handles.
func (s *TaskActivitySubscriber) EventTypes() []string {
	return []string{
		task.RoutingKeyAdded,
		task.RoutingKeyUpdated,
		task.RoutingKeyCompleted,
		task.RoutingKeyReopened,
		task.RoutingKeyDeleted,
	}
}

var activityMetrics = map[string]string{
	task.RoutingKeyAdded:     observability.MetricTasksAdded,
	task.RoutingKeyUpdated:   observability.MetricTasksUpdated,
	task.RoutingKeyCompleted: observability.MetricTasksCompleted,
	task.RoutingKeyReopened:  observability.MetricTasksReopened,
	task.RoutingKeyDeleted:   observability.MetricTasksDeleted,
}

// Handle processes an event.
func (s *TaskActivitySubscriber) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	name, ok := activityMetrics[event.RoutingKey]
	if !ok {
		s.logger.WarnContext(ctx, "unknown event type", "routing_key", event.RoutingKey)
		return nil
	}
	s.metrics.Counter(name, 1)
	s.metrics.Counter(observability.MetricEventsConsumed, 1, observability.T("routing_key", event.RoutingKey))

	if event.RoutingKey == task.RoutingKeyCompleted {
		return s.handleCompleted(ctx, event)
	}
	return nil
}

// TaskCompletedPayload is the payload of task.completed events.
type TaskCompletedPayload struct {
	CompletedAt time.Time `json:"completed_at"`
}

func (s *TaskActivitySubscriber) handleCompleted(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload TaskCompletedPayload
	if err := event.Decode(&payload); err != nil {
		s.logger.DebugContext(ctx, "failed to decode completion payload",
			"task_id", event.AggregateID,
			"error", err,
		)
	}

	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load tasks for unblock check",
			"task_id", event.AggregateID,
			"error", err,
		)
		return nil
	}

	idx := dependency.NewIndex(tasks)
	for _, dependent := range dependency.Dependents(tasks, event.AggregateID) {
		if !idx.IsReady(dependent) {
			continue
		}
		s.metrics.Counter(observability.MetricTasksUnblocked, 1)
		s.logger.InfoContext(ctx, "task unblocked",
			"task_id", dependent.ID(),
			"title", dependent.Title(),
			"completed_prerequisite", event.AggregateID,
			"completed_at", payload.CompletedAt,
		)
	}
	return nil
}
