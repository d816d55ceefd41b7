package task

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrSelfDependency     = errors.New("task cannot depend on itself")
	ErrCompletionMismatch = errors.New("completed_at must be set exactly when the task is completed")
)

// Status represents the task lifecycle state.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatus creates a Status from its text form. Both "in-progress" and
// "in_progress" are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in-progress", "in_progress", "inprogress":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	default:
		return StatusPending, ErrInvalidStatus
	}
}

// Task is a unit of work that may wait on other tasks.
type Task struct {
	domain.Aggregate
	title        string
	description  string
	priority     value_objects.Priority
	status       Status
	deadline     value_objects.Date
	completedAt  *time.Time
	dependencies []uuid.UUID
}

// Snapshot is the plain-data form of a Task, used to rebuild tasks from
// datasets and to hand copies across package boundaries.
type Snapshot struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Priority     value_objects.Priority
	Status       Status
	Deadline     value_objects.Date
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	Dependencies []uuid.UUID
}

// NewTask creates a pending task created at now.
func NewTask(title string, priority value_objects.Priority, now time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return nil, value_objects.ErrInvalidPriority
	}

	t := &Task{
		Aggregate: domain.NewAggregate(now),
		title:     title,
		priority:  priority,
		status:    StatusPending,
	}

	t.Record(NewTaskAdded(t.ID(), t.title, t.priority.String(), now))

	return t, nil
}

// Rehydrate rebuilds a task from a snapshot without recording events.
func Rehydrate(s Snapshot) (*Task, error) {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !s.Priority.IsValid() {
		return nil, value_objects.ErrInvalidPriority
	}
	if s.Status < StatusPending || s.Status > StatusCompleted {
		return nil, ErrInvalidStatus
	}
	if (s.Status == StatusCompleted) != (s.CompletedAt != nil) {
		return nil, ErrCompletionMismatch
	}
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.CreatedAt
	}

	t := &Task{
		Aggregate:   domain.RestoreAggregate(id, s.CreatedAt, updatedAt),
		title:       title,
		description: strings.TrimSpace(s.Description),
		priority:    s.Priority,
		status:      s.Status,
		deadline:    s.Deadline,
		completedAt: copyTime(s.CompletedAt),
	}
	if err := t.applyDependencies(s.Dependencies); err != nil {
		return nil, err
	}
	return t, nil
}

// Getters

func (t *Task) Title() string                    { return t.title }
func (t *Task) Description() string              { return t.description }
func (t *Task) Priority() value_objects.Priority { return t.priority }
func (t *Task) Status() Status                   { return t.status }
func (t *Task) IsCompleted() bool                { return t.status == StatusCompleted }
func (t *Task) IsPending() bool                  { return t.status == StatusPending }
func (t *Task) CompletedAt() *time.Time          { return copyTime(t.completedAt) }

// Deadline returns the task's due date and whether it has one.
func (t *Task) Deadline() (value_objects.Date, bool) {
	return t.deadline, !t.deadline.IsZero()
}

// Dependencies returns the ids of the task's prerequisites in order. Ids of
// tasks that no longer exist are kept.
func (t *Task) Dependencies() []uuid.UUID {
	deps := make([]uuid.UUID, len(t.dependencies))
	copy(deps, t.dependencies)
	return deps
}

// HasDependencies reports whether the task lists any prerequisite.
func (t *Task) HasDependencies() bool {
	return len(t.dependencies) > 0
}

// DependsOn reports whether id is listed as a prerequisite.
func (t *Task) DependsOn(id uuid.UUID) bool {
	for _, dep := range t.dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch(now)
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string, now time.Time) {
	t.description = strings.TrimSpace(description)
	t.Touch(now)
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(priority value_objects.Priority, now time.Time) error {
	if !priority.IsValid() {
		return value_objects.ErrInvalidPriority
	}
	t.priority = priority
	t.Touch(now)
	return nil
}

// SetDeadline sets the due date. The zero Date clears it.
func (t *Task) SetDeadline(deadline value_objects.Date, now time.Time) {
	t.deadline = deadline
	t.Touch(now)
}

// SetDependencies replaces the prerequisite list. Duplicates are dropped,
// first occurrence wins.
func (t *Task) SetDependencies(ids []uuid.UUID, now time.Time) error {
	if err := t.applyDependencies(ids); err != nil {
		return err
	}
	t.Touch(now)
	return nil
}

func (t *Task) applyDependencies(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	deps := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == t.ID() {
			return ErrSelfDependency
		}
		if _, dup := seen[id]; dup || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		deps = append(deps, id)
	}
	t.dependencies = deps
	return nil
}

// TransitionTo moves the task to status. Entering completed stamps
// completedAt with now; leaving completed clears it.
func (t *Task) TransitionTo(status Status, now time.Time) error {
	if status < StatusPending || status > StatusCompleted {
		return ErrInvalidStatus
	}
	if status == t.status {
		return nil
	}

	wasCompleted := t.IsCompleted()
	t.status = status
	t.Touch(now)

	switch {
	case status == StatusCompleted:
		completedAt := now
		t.completedAt = &completedAt
		t.Record(NewTaskCompleted(t.ID(), completedAt))
	case wasCompleted:
		t.completedAt = nil
		t.Record(NewTaskReopened(t.ID(), status.String(), now))
	}
	return nil
}

// ToggleComplete flips between completed and pending. An in-progress task
// becomes completed.
func (t *Task) ToggleComplete(now time.Time) {
	next := StatusCompleted
	if t.IsCompleted() {
		next = StatusPending
	}
	// Both targets are valid statuses.
	_ = t.TransitionTo(next, now)
}

// RecordUpdated records that the given fields were changed.
func (t *Task) RecordUpdated(fields []string, now time.Time) {
	if len(fields) == 0 {
		return
	}
	t.Record(NewTaskUpdated(t.ID(), fields, now))
}

// MarkDeleted records the task's removal from the store.
func (t *Task) MarkDeleted(now time.Time) {
	t.Record(NewTaskDeleted(t.ID(), t.title, now))
}

// Snapshot returns a copy of the task's state.
func (t *Task) Snapshot() Snapshot {
	return Snapshot{
		ID:           t.ID(),
		Title:        t.title,
		Description:  t.description,
		Priority:     t.priority,
		Status:       t.status,
		Deadline:     t.deadline,
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		CompletedAt:  copyTime(t.completedAt),
		Dependencies: t.Dependencies(),
	}
}

// Clone returns an independent copy of the task without pending events.
func (t *Task) Clone() *Task {
	c := &Task{
		Aggregate:    domain.RestoreAggregate(t.ID(), t.CreatedAt(), t.UpdatedAt()),
		title:        t.title,
		description:  t.description,
		priority:     t.priority,
		status:       t.status,
		deadline:     t.deadline,
		completedAt:  copyTime(t.completedAt),
		dependencies: t.Dependencies(),
	}
	return c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
