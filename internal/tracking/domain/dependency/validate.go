package dependency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

var ErrDependencyCycle = errors.New("dependencies would form a cycle")

// Validate checks that giving taskID the prerequisites deps keeps the graph
// acyclic. Edges of the other tasks are taken from tasks; ids that do not
// resolve end a path, so a dangling id can never close a cycle.
func Validate(tasks []*task.Task, taskID uuid.UUID, deps []uuid.UUID) error {
	for _, id := range deps {
		if id == taskID {
			return task.ErrSelfDependency
		}
	}

	idx := NewIndex(tasks)
	edges := func(id uuid.UUID) []uuid.UUID {
		if id == taskID {
			return deps
		}
		if t, ok := idx[id]; ok {
			return t.Dependencies()
		}
		return nil
	}

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[uuid.UUID]int)
	var path []uuid.UUID

	var visit func(id uuid.UUID) error
	visit = func(id uuid.UUID) error {
		switch state[id] {
		case inProgress:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, describe(append(path, id), idx))
		case done:
			return nil
		}
		state[id] = inProgress
		path = append(path, id)
		for _, next := range edges(id) {
			if err := visit(next); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	return visit(taskID)
}

func describe(path []uuid.UUID, idx Index) string {
	names := make([]string, len(path))
	for i, id := range path {
		if t, ok := idx[id]; ok {
			names[i] = fmt.Sprintf("%q", t.Title())
		} else {
			names[i] = id.String()
		}
	}
	return strings.Join(names, " -> ")
}
