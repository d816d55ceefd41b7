// Package dependency classifies tasks by their prerequisite relationships.
//
// Dependency ids are resolved lazily against the snapshot being classified.
// Ids that no longer resolve (the prerequisite was deleted) are dropped
// silently: they neither block a task nor count towards its chain.
package dependency

import (
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/google/uuid"
)

// Index maps task ids to tasks of one snapshot.
type Index map[uuid.UUID]*task.Task

// NewIndex builds an Index over tasks.
func NewIndex(tasks []*task.Task) Index {
	idx := make(Index, len(tasks))
	for _, t := range tasks {
		idx[t.ID()] = t
	}
	return idx
}

// Resolve returns the prerequisites of t that exist in the index, in the
// order t lists them.
func (idx Index) Resolve(t *task.Task) []*task.Task {
	deps := t.Dependencies()
	out := make([]*task.Task, 0, len(deps))
	for _, id := range deps {
		if dep, ok := idx[id]; ok {
			out = append(out, dep)
		}
	}
	return out
}

// IsBlocked reports whether any resolved prerequisite of t is not completed.
func (idx Index) IsBlocked(t *task.Task) bool {
	for _, dep := range idx.Resolve(t) {
		if !dep.IsCompleted() {
			return true
		}
	}
	return false
}

// IsReady reports whether t is pending with every resolved prerequisite completed.
func (idx Index) IsReady(t *task.Task) bool {
	return t.IsPending() && !idx.IsBlocked(t)
}

// Chain is a task with at least one declared dependency together with the
// prerequisites that still resolve.
type Chain struct {
	Task          *task.Task
	Prerequisites []*task.Task
}

// Total returns the number of resolved prerequisites.
func (c Chain) Total() int {
	return len(c.Prerequisites)
}

// CompletedCount returns the number of completed resolved prerequisites.
func (c Chain) CompletedCount() int {
	n := 0
	for _, p := range c.Prerequisites {
		if p.IsCompleted() {
			n++
		}
	}
	return n
}

// Ratio returns CompletedCount/Total, or 0 when no prerequisite resolves.
func (c Chain) Ratio() float64 {
	if c.Total() == 0 {
		return 0
	}
	return float64(c.CompletedCount()) / float64(c.Total())
}

// Graph partitions a snapshot by dependency relationships. Independent and
// Chains (as dependents or as prerequisites) together cover every task
// exactly once; Blocked and Ready are overlays on the same tasks.
type Graph struct {
	Independent []*task.Task
	Chains      []Chain
	Blocked     []*task.Task
	Ready       []*task.Task
}

// Classify builds the Graph for tasks, preserving snapshot order.
func Classify(tasks []*task.Task) Graph {
	idx := NewIndex(tasks)
	referenced := make(map[uuid.UUID]struct{})
	for _, t := range tasks {
		for _, id := range t.Dependencies() {
			referenced[id] = struct{}{}
		}
	}

	g := Graph{
		Independent: make([]*task.Task, 0),
		Chains:      make([]Chain, 0),
		Blocked:     make([]*task.Task, 0),
		Ready:       make([]*task.Task, 0),
	}
	for _, t := range tasks {
		_, isReferenced := referenced[t.ID()]
		if !t.HasDependencies() && !isReferenced {
			g.Independent = append(g.Independent, t)
		}
		if t.HasDependencies() {
			g.Chains = append(g.Chains, Chain{Task: t, Prerequisites: idx.Resolve(t)})
		}
		if idx.IsBlocked(t) {
			g.Blocked = append(g.Blocked, t)
		}
		if idx.IsReady(t) {
			g.Ready = append(g.Ready, t)
		}
	}
	return g
}

// Dependents returns the tasks that list id as a prerequisite.
func Dependents(tasks []*task.Task, id uuid.UUID) []*task.Task {
	out := make([]*task.Task, 0)
	for _, t := range tasks {
		if t.DependsOn(id) {
			out = append(out, t)
		}
	}
	return out
}
