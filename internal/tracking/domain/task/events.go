package task

import (
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyAdded     = "taskflow.task.added"
	RoutingKeyUpdated   = "taskflow.task.updated"
	RoutingKeyCompleted = "taskflow.task.completed"
	RoutingKeyReopened  = "taskflow.task.reopened"
	RoutingKeyDeleted   = "taskflow.task.deleted"
)

// TaskAdded is emitted when a task enters the store.
type TaskAdded struct {
	domain.Event
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

// NewTaskAdded creates a TaskAdded event.
func NewTaskAdded(taskID uuid.UUID, title, priority string, at time.Time) *TaskAdded {
	return &TaskAdded{
		Event:    domain.NewEvent(taskID, AggregateType, RoutingKeyAdded, at),
		Title:    title,
		Priority: priority,
	}
}

// TaskUpdated is emitted when fields of a task change.
type TaskUpdated struct {
	domain.Event
	Fields []string `json:"fields"` // Names of fields that were updated
}

// NewTaskUpdated creates a TaskUpdated event.
func NewTaskUpdated(taskID uuid.UUID, fields []string, at time.Time) *TaskUpdated {
	return &TaskUpdated{
		Event:  domain.NewEvent(taskID, AggregateType, RoutingKeyUpdated, at),
		Fields: fields,
	}
}

// TaskCompleted is emitted when a task transitions into completed.
type TaskCompleted struct {
	domain.Event
	CompletedAt time.Time `json:"completed_at"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID, completedAt time.Time) *TaskCompleted {
	return &TaskCompleted{
		Event:       domain.NewEvent(taskID, AggregateType, RoutingKeyCompleted, completedAt),
		CompletedAt: completedAt,
	}
}

// TaskReopened is emitted when a completed task moves back to an open status.
type TaskReopened struct {
	domain.Event
	Status string `json:"status"`
}

// NewTaskReopened creates a TaskReopened event.
func NewTaskReopened(taskID uuid.UUID, status string, at time.Time) *TaskReopened {
	return &TaskReopened{
		Event:  domain.NewEvent(taskID, AggregateType, RoutingKeyReopened, at),
		Status: status,
	}
}

// TaskDeleted is emitted when a task is removed from the store.
type TaskDeleted struct {
	domain.Event
	Title string `json:"title"`
}

// NewTaskDeleted creates a TaskDeleted event.
func NewTaskDeleted(taskID uuid.UUID, title string, at time.Time) *TaskDeleted {
	return &TaskDeleted{
		Event: domain.NewEvent(taskID, AggregateType, RoutingKeyDeleted, at),
		Title: title,
	}
}
