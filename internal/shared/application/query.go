package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// Query represents a read of system state.
type Query interface {
	QueryName() string
}

// QueryHandler handles a specific query type.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// RunQuery executes query through handle, timed under the query's name.
// Logger and metrics may be nil.
func RunQuery[Q Query, R any](ctx context.Context, logger *slog.Logger, metrics observability.Metrics, query Q, handle func(context.Context, Q) (R, error)) (R, error) {
	return observability.TimeOperationResult(ctx, logger, metrics, query.QueryName(), func(ctx context.Context) (R, error) {
		return handle(ctx, query)
	})
}
