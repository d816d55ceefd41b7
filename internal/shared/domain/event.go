package domain

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate and delivered on the event bus.
type DomainEvent interface {
	EventID() uuid.UUID
	AggregateID() uuid.UUID
	AggregateType() string
	RoutingKey() string
	OccurredAt() time.Time
	Metadata() EventMetadata
}

// EventMetadata ties an event to the request that caused it.
type EventMetadata struct {
	CorrelationID string
	CausationID   string
}

// Event is embedded by concrete domain events.
type Event struct {
	id            uuid.UUID
	aggregateID   uuid.UUID
	aggregateType string
	routingKey    string
	at            time.Time
	meta          EventMetadata
}

// NewEvent creates an event with a fresh ID.
func NewEvent(aggregateID uuid.UUID, aggregateType, routingKey string, at time.Time) Event {
	return Event{
		id:            uuid.New(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		routingKey:    routingKey,
		at:            at,
	}
}

func (e Event) EventID() uuid.UUID      { return e.id }
func (e Event) AggregateID() uuid.UUID  { return e.aggregateID }
func (e Event) AggregateType() string   { return e.aggregateType }
func (e Event) RoutingKey() string      { return e.routingKey }
func (e Event) OccurredAt() time.Time   { return e.at }
func (e Event) Metadata() EventMetadata { return e.meta }

// SetMetadata attaches request metadata. Called before publishing.
func (e *Event) SetMetadata(meta EventMetadata) {
	e.meta = meta
}
