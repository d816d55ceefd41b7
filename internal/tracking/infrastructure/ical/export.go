// Package ical exports task deadlines as an iCalendar feed.
package ical

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

// ProductID identifies the exporting application in the feed.
const ProductID = "-//taskflow//Task Deadlines//EN"

// PropXTaskStatus carries the task status on each event.
const PropXTaskStatus = "X-TASKFLOW-STATUS"

// ErrNoDeadlines is returned when no task has a deadline to export.
var ErrNoDeadlines = errors.New("no tasks with deadlines to export")

// ToCalendar builds one all-day VEVENT per task with a deadline. stamp is
// used as DTSTAMP for every event.
func ToCalendar(tasks []*task.Task, stamp time.Time) (*goical.Calendar, error) {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, ProductID)

	for _, t := range tasks {
		deadline, ok := t.Deadline()
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, toEvent(t, deadline, stamp).Component)
	}
	if len(cal.Children) == 0 {
		return nil, ErrNoDeadlines
	}
	return cal, nil
}

func toEvent(t *task.Task, deadline value_objects.Date, stamp time.Time) *goical.Event {
	event := goical.NewEvent()
	event.Props.SetText(goical.PropUID, t.ID().String()+"@taskflow")
	event.Props.SetDateTime(goical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(goical.PropCreated, t.CreatedAt().UTC())
	event.Props.SetDate(goical.PropDateTimeStart, deadline.In(time.UTC))
	event.Props.SetDate(goical.PropDateTimeEnd, deadline.AddDays(1).In(time.UTC))
	event.Props.SetText(goical.PropSummary, t.Title())
	priority := goical.NewProp(goical.PropPriority)
	priority.Value = strconv.Itoa(icalPriority(t.Priority()))
	event.Props.Set(priority)
	event.Props.SetText(goical.PropCategories, t.Priority().String())

	var description strings.Builder
	if t.Description() != "" {
		description.WriteString(t.Description())
		description.WriteString("\n\n")
	}
	fmt.Fprintf(&description, "Status: %s", t.Status())
	event.Props.SetText(goical.PropDescription, description.String())

	status := goical.NewProp(PropXTaskStatus)
	status.Value = t.Status().String()
	event.Props[PropXTaskStatus] = []goical.Prop{*status}

	return event
}

// icalPriority maps to RFC 5545 PRIORITY, where 1 is highest and 9 lowest.
func icalPriority(p value_objects.Priority) int {
	switch p {
	case value_objects.PriorityHigh:
		return 1
	case value_objects.PriorityLow:
		return 9
	default:
		return 5
	}
}

// Export writes the deadline feed for tasks to w.
func Export(ctx context.Context, w io.Writer, tasks []*task.Task, stamp time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cal, err := ToCalendar(tasks, stamp)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := goical.NewEncoder(&buf).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
