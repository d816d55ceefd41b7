package queries

import (
	"context"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/shared/domain"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/calendar"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// GetCalendarQuery selects a calendar window. An empty Anchor means today;
// Move shifts the window by whole units after anchoring.
type GetCalendarQuery struct {
	Granularity string
	Anchor      string
	Move        int
	Selected    string
}

func (GetCalendarQuery) QueryName() string { return "calendar.get" }

// CellDTO is one day of the calendar.
type CellDTO struct {
	Date            string    `json:"date"`
	Tasks           []TaskDTO `json:"tasks"`
	IsToday         bool      `json:"is_today"`
	HasOverdue      bool      `json:"has_overdue"`
	HasHighPriority bool      `json:"has_high_priority"`
	High            int       `json:"high"`
	Medium          int       `json:"medium"`
	Low             int       `json:"low"`
}

// CalendarDTO is a bucketed calendar window.
type CalendarDTO struct {
	Title       string    `json:"title"`
	Granularity string    `json:"granularity"`
	Anchor      string    `json:"anchor"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Cells       []CellDTO `json:"cells"`
	Selected    *CellDTO  `json:"selected,omitempty"`
}

// GetCalendarHandler handles GetCalendarQuery.
type GetCalendarHandler struct {
	taskRepo task.Repository
	clock    domain.Clock
	prefs    Preferences
}

// NewGetCalendarHandler creates a new GetCalendarHandler.
func NewGetCalendarHandler(taskRepo task.Repository, clock domain.Clock, prefs Preferences) *GetCalendarHandler {
	if prefs == nil {
		prefs = DefaultPreferences{}
	}
	return &GetCalendarHandler{taskRepo: taskRepo, clock: clock, prefs: prefs}
}

// Handle executes the GetCalendarQuery.
func (h *GetCalendarHandler) Handle(ctx context.Context, query GetCalendarQuery) (*CalendarDTO, error) {
	granularity, err := calendar.ParseGranularity(query.Granularity)
	if err != nil {
		return nil, err
	}
	now := h.clock.Now()

	anchor := value_objects.DateOf(now)
	if strings.TrimSpace(query.Anchor) != "" {
		if anchor, err = value_objects.ParseDate(query.Anchor); err != nil {
			return nil, err
		}
	}
	if err := calendar.ValidateShift(query.Move); err != nil {
		return nil, err
	}
	var selected value_objects.Date
	if strings.TrimSpace(query.Selected) != "" {
		if selected, err = value_objects.ParseDate(query.Selected); err != nil {
			return nil, err
		}
	}

	view := calendar.NewView(anchor, granularity, h.prefs.WeekStart(ctx))
	view = view.Shift(query.Move)

	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cells := calendar.Bucket(view, tasks, now)
	start, end := view.Range()
	dto := &CalendarDTO{
		Title:       view.Title(),
		Granularity: string(view.Granularity),
		Anchor:      view.Anchor.String(),
		Start:       start.String(),
		End:         end.String(),
		Cells:       make([]CellDTO, 0, len(cells)),
	}
	for _, c := range cells {
		dto.Cells = append(dto.Cells, newCellDTO(c, now))
	}
	if !selected.IsZero() {
		cell := newCellDTO(calendar.TasksOn(tasks, selected, now), now)
		dto.Selected = &cell
	}
	return dto, nil
}

func newCellDTO(c calendar.Cell, now time.Time) CellDTO {
	return CellDTO{
		Date:            c.Date.String(),
		Tasks:           NewTaskDTOs(c.Tasks, now),
		IsToday:         c.IsToday,
		HasOverdue:      c.HasOverdue,
		HasHighPriority: c.HasHighPriority,
		High:            c.PriorityCounts[value_objects.PriorityHigh],
		Medium:          c.PriorityCounts[value_objects.PriorityMedium],
		Low:             c.PriorityCounts[value_objects.PriorityLow],
	}
}
