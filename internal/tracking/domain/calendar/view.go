// Package calendar buckets task deadlines into day, week and month views.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
)

var (
	ErrInvalidGranularity = errors.New("invalid calendar view, use day, week or month")
	ErrShiftOutOfRange    = errors.New("calendar shift out of range")
)

// MaxShift bounds how many units a view may move in one step.
const MaxShift = 10000

// Granularity is the span a View covers.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity parses day, week or month. An empty string means month.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day":
		return GranularityDay, nil
	case "week":
		return GranularityWeek, nil
	case "month", "":
		return GranularityMonth, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
}

// View is a window over the calendar anchored on a date.
type View struct {
	Anchor      value_objects.Date
	Granularity Granularity
	WeekStart   time.Weekday
}

// NewView creates a View. Weeks start on Sunday unless configured otherwise.
func NewView(anchor value_objects.Date, granularity Granularity, weekStart time.Weekday) View {
	return View{Anchor: anchor, Granularity: granularity, WeekStart: weekStart}
}

// Next moves the view forward by one unit. Month navigation lands on the
// first of the month.
func (v View) Next() View {
	return v.Shift(1)
}

// Prev moves the view back by one unit.
func (v View) Prev() View {
	return v.Shift(-1)
}

// Today returns the view re-anchored on the calendar date of now.
func (v View) Today(now time.Time) View {
	v.Anchor = value_objects.DateOf(now)
	return v
}

// Shift moves the view by n units in one step. Zero leaves it unchanged.
func (v View) Shift(n int) View {
	if n == 0 {
		return v
	}
	switch v.Granularity {
	case GranularityDay:
		v.Anchor = v.Anchor.AddDays(n)
	case GranularityWeek:
		v.Anchor = v.Anchor.AddDays(7 * n)
	default:
		v.Anchor = v.Anchor.AddMonths(n)
	}
	return v
}

// ValidateShift rejects moves larger than MaxShift units.
func ValidateShift(n int) error {
	if n > MaxShift || n < -MaxShift {
		return fmt.Errorf("%w: %d (limit %d)", ErrShiftOutOfRange, n, MaxShift)
	}
	return nil
}

// Range returns the first and last day covered by the view, inclusive.
func (v View) Range() (value_objects.Date, value_objects.Date) {
	switch v.Granularity {
	case GranularityDay:
		return v.Anchor, v.Anchor
	case GranularityWeek:
		offset := (int(v.Anchor.Weekday()) - int(v.WeekStart) + 7) % 7
		start := v.Anchor.AddDays(-offset)
		return start, start.AddDays(6)
	default:
		return v.Anchor.FirstOfMonth(), v.Anchor.LastOfMonth()
	}
}

// Days lists every date in the view in order.
func (v View) Days() []value_objects.Date {
	start, end := v.Range()
	days := make([]value_objects.Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Title is the heading shown above the view.
func (v View) Title() string {
	switch v.Granularity {
	case GranularityDay:
		return v.Anchor.Format("Monday, January 2, 2006")
	case GranularityWeek:
		start, end := v.Range()
		if start.Year() != end.Year() {
			return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
		}
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	default:
		return v.Anchor.Format("January 2006")
	}
}
