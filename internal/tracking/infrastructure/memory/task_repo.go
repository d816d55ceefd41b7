// Package memory holds the in-process task collection and notification state.
package memory

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// TaskRepository implements task.Repository over an ordered slice.
// Tasks are cloned on the way in and out so callers never share state
// with the store.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []*task.Task
	index map[uuid.UUID]int
}

// NewTaskRepository creates an empty in-memory task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{index: make(map[uuid.UUID]int)}
}

// Save inserts t at the end of the collection, or replaces the existing
// task with the same id in place.
func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := t.Clone()
	stored.ClearEvents()
	if i, ok := r.index[t.ID()]; ok {
		r.tasks[i] = stored
		return nil
	}
	r.index[t.ID()] = len(r.tasks)
	r.tasks = append(r.tasks, stored)
	return nil
}

// FindByID returns a copy of the task, or task.ErrTaskNotFound.
func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return r.tasks[i].Clone(), nil
}

// FindAll returns copies of every task in insertion order.
func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*task.Task, len(r.tasks))
	for i, t := range r.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

// Delete removes the task. Other tasks keep any dependency on its id.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return task.ErrTaskNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.tasks); j++ {
		r.index[r.tasks[j].ID()] = j
	}
	return nil
}

// Len returns the number of stored tasks.
func (r *TaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
