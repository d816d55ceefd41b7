package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/value_objects"
	"github.com/spf13/cobra"
)

var (
	calendarView   string
	calendarDate   string
	calendarSelect string
	calendarNext   bool
	calendarPrev   bool
	calendarToday  bool
	calendarJSON   bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show task deadlines on a calendar",
	Long: `Show deadlines bucketed by day, week or month.

The week starts on the day configured in settings (preferences.week_start).
Moving a month view lands on the first day of the month.

Examples:
  taskflow calendar                         # This month
  taskflow calendar --view week --next      # Next week
  taskflow calendar --date 2025-03-10 --view day
  taskflow calendar --select 2025-01-22     # Tasks due on a given day`,
	Aliases: []string{"cal"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		query := queries.GetCalendarQuery{
			Granularity: calendarView,
			Anchor:      calendarDate,
			Selected:    calendarSelect,
		}
		switch {
		case calendarToday:
			query.Anchor = ""
		case calendarNext:
			query.Move = 1
		case calendarPrev:
			query.Move = -1
		}

		cal, err := app.GetCalendarHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to load calendar: %w", err)
		}
		if calendarJSON {
			return WriteJSON(cmd.OutOrStdout(), cal)
		}

		p := NewPrinter(cmd)
		p.Printf("\n  %s\n", cal.Title)
		p.Println(strings.Repeat("=", 60))

		if cal.Granularity == "month" {
			printMonthGrid(p, cal)
		}

		p.Section("DEADLINES")
		empty := true
		for _, cell := range cal.Cells {
			if len(cell.Tasks) == 0 && cal.Granularity == "month" {
				continue
			}
			empty = false
			printCell(p, cell)
		}
		if empty {
			p.Println("    No deadlines in this period.")
		}

		if cal.Selected != nil {
			p.Section("SELECTED: " + p.Date(cal.Selected.Date))
			p.Printf("    High: %d   Medium: %d   Low: %d\n", cal.Selected.High, cal.Selected.Medium, cal.Selected.Low)
			p.Tasks(cal.Selected.Tasks, "No tasks due on this day.")
		}
		p.Println()
		return nil
	},
}

func printCell(p *Printer, cell queries.CellDTO) {
	marker := ""
	if cell.IsToday {
		marker = " (today)"
	}
	p.Printf("  %s%s\n", p.Date(cell.Date), marker)
	p.Tasks(cell.Tasks, "-")
}

// printMonthGrid draws the month with one column per weekday. Days with
// deadlines are marked with *, days with overdue tasks with !.
func printMonthGrid(p *Printer, cal *queries.CalendarDTO) {
	if len(cal.Cells) == 0 {
		return
	}
	first, err := value_objects.ParseDate(cal.Cells[0].Date)
	if err != nil {
		return
	}
	weekStart := p.Settings().FirstWeekday()

	var header strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&header, " %-4s", time.Weekday((int(weekStart)+i)%7).String()[:3])
	}
	p.Println(header.String())

	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	var row strings.Builder
	row.WriteString(strings.Repeat("     ", offset))
	col := offset
	for _, cell := range cal.Cells {
		d, _ := value_objects.ParseDate(cell.Date)
		today := ' '
		if cell.IsToday {
			today = '>'
		}
		mark := ' '
		switch {
		case cell.HasOverdue:
			mark = '!'
		case len(cell.Tasks) > 0:
			mark = '*'
		}
		fmt.Fprintf(&row, "%c%2d%c ", today, d.Day(), mark)
		col++
		if col == 7 {
			p.Println(strings.TrimRight(row.String(), " "))
			row.Reset()
			col = 0
		}
	}
	if row.Len() > 0 {
		p.Println(strings.TrimRight(row.String(), " "))
	}
}

func init() {
	calendarCmd.Flags().StringVar(&calendarView, "view", "month", "granularity (day, week, month)")
	calendarCmd.Flags().StringVar(&calendarDate, "date", "", "anchor date (YYYY-MM-DD, default today)")
	calendarCmd.Flags().StringVar(&calendarSelect, "select", "", "list the tasks due on this date (YYYY-MM-DD)")
	calendarCmd.Flags().BoolVar(&calendarNext, "next", false, "move forward one day, week or month")
	calendarCmd.Flags().BoolVar(&calendarPrev, "prev", false, "move back one day, week or month")
	calendarCmd.Flags().BoolVar(&calendarToday, "today", false, "jump to the period containing today")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "output as JSON")
	calendarCmd.MarkFlagsMutuallyExclusive("next", "prev", "today")
	rootCmd.AddCommand(calendarCmd)
}
