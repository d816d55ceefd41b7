package domain

import (
	"time"

	"github.com/google/uuid"
)

// Aggregate is embedded by aggregate roots. It carries the identity, the
// creation and modification times, and the events recorded since they were
// last pulled.
type Aggregate struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	pending   []DomainEvent
}

// NewAggregate starts a new aggregate with a random ID created at now.
func NewAggregate(now time.Time) Aggregate {
	return Aggregate{id: uuid.New(), createdAt: now, updatedAt: now}
}

// RestoreAggregate rebuilds an aggregate from stored state. No events are pending.
func RestoreAggregate(id uuid.UUID, createdAt, updatedAt time.Time) Aggregate {
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	return Aggregate{id: id, createdAt: createdAt, updatedAt: updatedAt}
}

func (a Aggregate) ID() uuid.UUID        { return a.id }
func (a Aggregate) CreatedAt() time.Time { return a.createdAt }
func (a Aggregate) UpdatedAt() time.Time { return a.updatedAt }

// Touch moves the modification time to now. It never moves backwards.
func (a *Aggregate) Touch(now time.Time) {
	if now.After(a.updatedAt) {
		a.updatedAt = now
	}
}

// Record appends an event to the pending list.
func (a *Aggregate) Record(event DomainEvent) {
	a.pending = append(a.pending, event)
}

// PendingEvents returns a copy of the events recorded since the last pull.
func (a Aggregate) PendingEvents() []DomainEvent {
	return append([]DomainEvent(nil), a.pending...)
}

// ClearEvents drops pending events without publishing them.
func (a *Aggregate) ClearEvents() {
	a.pending = nil
}

// PullEvents returns the pending events and clears them.
func (a *Aggregate) PullEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	return events
}
