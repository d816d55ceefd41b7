package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	settingsDomain "github.com/felixgeelhaar/taskflow/internal/settings/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/felixgeelhaar/taskflow/internal/tracking/infrastructure/dataset"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	ErrNotInitialized = errors.New("application not initialized")
	ErrAmbiguousID    = errors.New("task id prefix matches more than one task")
)

// RequireApp returns the global app or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}

// MinIDPrefix is the shortest task id prefix accepted, the length ShortID
// prints. Shorter args are dataset ids, so a deleted seed id stays unknown
// instead of matching an unrelated task.
const MinIDPrefix = 8

// ResolveTaskID accepts a full task id, a dataset id from the seed file or
// a unique prefix of a task id of at least MinIDPrefix characters. Anything
// else maps to an id that is not in the store, so the command reports the
// task as not found.
func ResolveTaskID(ctx context.Context, a *App, arg string) (uuid.UUID, error) {
	arg = strings.TrimSpace(arg)
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	list, err := a.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	if err != nil {
		return uuid.Nil, err
	}

	mapped := dataset.MapID(arg)
	var matches []uuid.UUID
	prefix := strings.ToLower(arg)
	usePrefix := len(prefix) >= MinIDPrefix
	for _, t := range list.Tasks {
		if t.ID == mapped {
			return mapped, nil
		}
		if usePrefix && strings.HasPrefix(t.ID.String(), prefix) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return mapped, nil
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %q", ErrAmbiguousID, arg)
	}
}

// WriteJSON encodes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Printer renders tasks using the user's date format.
type Printer struct {
	w        io.Writer
	settings settingsDomain.Settings
}

// NewPrinter creates a printer writing to the command's output.
func NewPrinter(cmd *cobra.Command) *Printer {
	p := &Printer{w: cmd.OutOrStdout(), settings: settingsDomain.Defaults()}
	if app != nil && app.SettingsService != nil {
		if s, err := app.SettingsService.Get(cmd.Context()); err == nil {
			p.settings = s
		}
	}
	return p
}

// Settings returns the settings the printer formats with.
func (p *Printer) Settings() settingsDomain.Settings {
	return p.settings
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes a line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// Section prints a heading followed by a separator.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "\n%s\n", title)
	fmt.Fprintln(p.w, strings.Repeat("-", 60))
}

// Date formats a YYYY-MM-DD string with the configured date format.
func (p *Printer) Date(s string) string {
	d, err := value_objects.ParseDate(s)
	if err != nil {
		return s
	}
	return p.settings.FormatDate(d)
}

// Task prints one task in list form.
func (p *Printer) Task(t queries.TaskDTO) {
	fmt.Fprintf(p.w, "%s %s %s%s\n", StatusIcon(t.Status), t.Title, PriorityBadge(t.Priority), DueMarker(t))
	if p.settings.Preferences.CompactView {
		return
	}
	fmt.Fprintf(p.w, "   ID: %s\n", ShortID(t.ID))
	if t.Deadline != "" {
		fmt.Fprintf(p.w, "   Due: %s\n", p.Date(t.Deadline))
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(p.w, "   Depends on: %d task(s)\n", len(t.Dependencies))
	}
	if verbose && t.Description != "" {
		fmt.Fprintf(p.w, "   %s\n", t.Description)
	}
}

// Tasks prints a list of tasks or the empty message.
func (p *Printer) Tasks(tasks []queries.TaskDTO, empty string) {
	if len(tasks) == 0 {
		fmt.Fprintf(p.w, "    %s\n", empty)
		return
	}
	for _, t := range tasks {
		p.Task(t)
	}
}

// ShortID returns the first eight characters of a task id.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// StatusIcon returns the checkbox for a task status.
func StatusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "in-progress":
		return "[>]"
	default:
		return "[ ]"
	}
}

// PriorityBadge returns a short marker for a priority.
func PriorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

// DueMarker flags overdue tasks and tasks due today.
func DueMarker(t queries.TaskDTO) string {
	switch {
	case t.IsOverdue:
		return " [OVERDUE]"
	case t.IsDueToday:
		return " [TODAY]"
	default:
		return ""
	}
}

// ResetFlags restores every flag of cmd and its subcommands to its default.
// Flags live in package variables, so tests reset them between executions.
func ResetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		ResetFlags(sub)
	}
}
