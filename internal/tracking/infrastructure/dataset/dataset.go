// Package dataset reads and writes task collections as JSON or YAML
// documents. It supplies the mock seed that every run starts from and the
// dataset export.
package dataset

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/dependency"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// IDNamespace derives stable task UUIDs from ids that are not UUIDs.
var IDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://taskflow.local/tasks"))

// Document is the JSON form of a task collection.
type Document struct {
	Anchor string   `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Tasks  []Record `json:"tasks" yaml:"tasks"`
}

// Record is the JSON form of one task.
type Record struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority     string   `json:"priority" yaml:"priority"`
	Status       string   `json:"status" yaml:"status"`
	Deadline     string   `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	CreatedAt    string   `json:"createdAt" yaml:"createdAt"`
	CompletedAt  string   `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// Options controls how a document becomes tasks.
type Options struct {
	// Rebase shifts every date by the days between the anchor and Today.
	Rebase bool
	// Today is the calendar date rebasing aims for.
	Today value_objects.Date
	// Location interprets date-only timestamps. Defaults to UTC.
	Location *time.Location
}

// MapID returns the task UUID for a dataset id. UUID ids are kept as they
// are; anything else is hashed into IDNamespace.
func MapID(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(IDNamespace, []byte(id))
}

// Decode validates data and builds the tasks it describes, in document order.
func Decode(data []byte, opts Options) ([]*task.Task, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return doc.Build(opts)
}

// DecodeYAML converts a YAML document to JSON and decodes it, so both
// forms pass the same schema.
func DecodeYAML(data []byte, opts Options) ([]*task.Task, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []Record{}
	}
	for i := range doc.Tasks {
		if doc.Tasks[i].Dependencies == nil {
			doc.Tasks[i].Dependencies = []string{}
		}
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return Decode(converted, opts)
}

// Build builds tasks from an already validated document.
func (d Document) Build(opts Options) ([]*task.Task, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	shift := 0
	if opts.Rebase && d.Anchor != "" && !opts.Today.IsZero() {
		anchor, err := value_objects.ParseDate(d.Anchor)
		if err != nil {
			return nil, invalid("anchor", err.Error())
		}
		shift = anchor.DaysUntil(opts.Today)
	}

	tasks := make([]*task.Task, 0, len(d.Tasks))
	seen := make(map[uuid.UUID]bool, len(d.Tasks))
	for i, r := range d.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		snap, err := r.snapshot(path, loc, shift)
		if err != nil {
			return nil, err
		}
		if seen[snap.ID] {
			return nil, invalid(path+".id", fmt.Sprintf("duplicate id %q", r.ID))
		}
		seen[snap.ID] = true

		t, err := task.Rehydrate(snap)
		if err != nil {
			return nil, invalid(path, err.Error())
		}
		tasks = append(tasks, t)
	}

	for i, t := range tasks {
		if err := dependency.Validate(tasks, t.ID(), t.Dependencies()); err != nil {
			return nil, invalid(fmt.Sprintf("tasks[%d].dependencies", i), err.Error())
		}
	}
	return tasks, nil
}

func (r Record) snapshot(path string, loc *time.Location, shift int) (task.Snapshot, error) {
	priority, err := value_objects.ParsePriority(r.Priority)
	if err != nil {
		return task.Snapshot{}, invalid(path+".priority", err.Error())
	}
	status, err := task.ParseStatus(r.Status)
	if err != nil {
		return task.Snapshot{}, invalid(path+".status", err.Error())
	}
	createdAt, err := parseTimestamp(r.CreatedAt, loc)
	if err != nil {
		return task.Snapshot{}, invalid(path+".createdAt", err.Error())
	}

	snap := task.Snapshot{
		ID:          MapID(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt.AddDate(0, 0, shift),
	}

	if r.Deadline != "" {
		deadline, err := value_objects.ParseDate(r.Deadline)
		if err != nil {
			return task.Snapshot{}, invalid(path+".deadline", err.Error())
		}
		snap.Deadline = deadline.AddDays(shift)
	}

	// completedAt is kept only for completed tasks; a completed task
	// without one is taken as completed when it was created.
	if status == task.StatusCompleted {
		completedAt := createdAt
		if r.CompletedAt != "" {
			if completedAt, err = parseTimestamp(r.CompletedAt, loc); err != nil {
				return task.Snapshot{}, invalid(path+".completedAt", err.Error())
			}
		}
		completedAt = completedAt.AddDate(0, 0, shift)
		snap.CompletedAt = &completedAt
	}

	for _, dep := range r.Dependencies {
		snap.Dependencies = append(snap.Dependencies, MapID(dep))
	}
	return snap, nil
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := value_objects.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.In(loc), nil
}

func invalid(path, message string) error {
	return &ValidationError{Problems: []Problem{{Path: path, Message: message}}}
}

// NewDocument converts tasks into a document anchored at anchor.
func NewDocument(tasks []*task.Task, anchor value_objects.Date) Document {
	doc := Document{Anchor: anchor.String(), Tasks: make([]Record, 0, len(tasks))}
	for _, t := range tasks {
		r := Record{
			ID:           t.ID().String(),
			Title:        t.Title(),
			Description:  t.Description(),
			Priority:     t.Priority().String(),
			Status:       t.Status().String(),
			CreatedAt:    t.CreatedAt().Format(time.RFC3339Nano),
			Dependencies: make([]string, 0, len(t.Dependencies())),
		}
		if d, ok := t.Deadline(); ok {
			r.Deadline = d.String()
		}
		if at := t.CompletedAt(); at != nil {
			r.CompletedAt = at.Format(time.RFC3339Nano)
		}
		for _, dep := range t.Dependencies() {
			r.Dependencies = append(r.Dependencies, dep.String())
		}
		doc.Tasks = append(doc.Tasks, r)
	}
	return doc
}

// Encode renders tasks as an indented JSON document.
func Encode(tasks []*task.Task, anchor value_objects.Date) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(tasks, anchor), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders tasks as a YAML document.
func EncodeYAML(tasks []*task.Task, anchor value_objects.Date) ([]byte, error) {
	data, err := yaml.Marshal(NewDocument(tasks, anchor))
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return data, nil
}
