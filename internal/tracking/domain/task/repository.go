package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("task not found")

// Repository defines the interface for the task collection.
type Repository interface {
	// Save inserts a task or replaces it in place, keeping its position.
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	// FindAll returns every task in insertion order.
	FindAll(ctx context.Context) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
