package application

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/taskflow/pkg/observability"
)

// Command represents a request that changes state.
type Command interface {
	CommandName() string
}

// CommandHandler handles a specific command type and returns its result.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// RunCommand executes cmd through handle, timed under the command's name.
// Logger and metrics may be nil.
func RunCommand[C Command, R any](ctx context.Context, logger *slog.Logger, metrics observability.Metrics, cmd C, handle func(context.Context, C) (R, error)) (R, error) {
	return observability.TimeOperationResult(ctx, logger, metrics, cmd.CommandName(), func(ctx context.Context) (R, error) {
		return handle(ctx, cmd)
	})
}
