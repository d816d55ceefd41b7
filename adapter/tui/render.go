package tui

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/tracking/application/queries"
)

func writeTitle(b *strings.Builder) {
	title := "Taskflow"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeTabs(b *strings.Builder, current tab) {
	for i, name := range tabNames {
		if tab(i) == current {
			b.WriteString(activeTabStyle.Render(fmt.Sprintf("[%d %s]", i+1, name)) + " ")
			continue
		}
		b.WriteString(fmt.Sprintf(" %d %s  ", i+1, name))
	}
	b.WriteString("\n\n")
}

func writeDashboard(b *strings.Builder, d *queries.DashboardDTO) {
	if d == nil {
		b.WriteString("Loading...\n\n")
		return
	}
	s := d.Stats
	b.WriteString(headingStyle.Render("Overview") + "\n\n")
	b.WriteString(fmt.Sprintf("  Total: %d  Completed: %d  Pending: %d  Overdue: %d  Due today: %d\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.DueToday))
	b.WriteString(fmt.Sprintf("  Completion: %s %.0f%%\n\n", progressBar(s.CompletionRate, 20), s.CompletionRate*100))

	writeTaskSection(b, "Due Today", d.DueToday, "Nothing due today.")
	writeTaskSection(b, "Overdue", d.Overdue, "No overdue tasks.")
	writeTaskSection(b, "Recent", d.Recent, "No tasks yet.")
}

func writeTaskSection(b *strings.Builder, title string, tasks []queries.TaskDTO, empty string) {
	b.WriteString(headingStyle.Render(title) + "\n\n")
	if len(tasks) == 0 {
		b.WriteString("  " + empty + "\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(styleTask(t, formatTask(t, false)) + "\n")
	}
	b.WriteString("\n")
}

func writeTasks(b *strings.Builder, res *queries.ListTasksResult, filter, cursor int) {
	if res == nil {
		b.WriteString("Loading...\n\n")
		return
	}
	for i, f := range queries.Filters() {
		label := fmt.Sprintf("%s (%d)", f, res.Counts[f])
		if i == filter {
			label = "<" + label + ">"
		}
		b.WriteString(label + "  ")
	}
	b.WriteString("\n\n")

	if len(res.Tasks) == 0 {
		b.WriteString("  No tasks match this filter.\n\n")
		return
	}
	for i, t := range res.Tasks {
		line := styleTask(t, formatTask(t, i == cursor))
		if i == cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func writeCalendar(b *strings.Builder, cal *queries.CalendarDTO) {
	if cal == nil {
		b.WriteString("Loading...\n\n")
		return
	}
	b.WriteString(headingStyle.Render(cal.Title) + fmt.Sprintf(" (%s)\n\n", cal.Granularity))
	empty := true
	for _, c := range cal.Cells {
		if len(c.Tasks) == 0 && cal.Granularity == "month" {
			continue
		}
		empty = false
		marker := ""
		if c.IsToday {
			marker = " (today)"
		}
		b.WriteString(fmt.Sprintf("  %s%s  H:%d M:%d L:%d\n", c.Date, marker, c.High, c.Medium, c.Low))
		for _, t := range c.Tasks {
			b.WriteString("  " + formatTask(t, false) + "\n")
		}
	}
	if empty {
		b.WriteString("  No deadlines in this period.\n")
	}
	b.WriteString("\n")
}

func writeDependencies(b *strings.Builder, g *queries.DependencyGraphDTO) {
	if g == nil {
		b.WriteString("Loading...\n\n")
		return
	}
	b.WriteString(headingStyle.Render("Chains") + "\n\n")
	if len(g.Chains) == 0 {
		b.WriteString("  No task depends on another task.\n")
	}
	for _, c := range g.Chains {
		b.WriteString(fmt.Sprintf("%s  %s %d/%d\n", formatTask(c.Task, false), progressBar(c.Ratio, 10), c.CompletedCount, c.Total))
		for _, p := range c.Prerequisites {
			b.WriteString("      <- " + strings.TrimSpace(formatTask(p, false)) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Blocked: %d  Ready: %d  Independent: %d\n\n", len(g.Blocked), len(g.Ready), len(g.Independent)))
}

func writeNotifications(b *strings.Builder, n *queries.NotificationsDTO, cursor int) {
	if n == nil {
		b.WriteString("Loading...\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("Unread: %d\n\n", n.Unread))
	if len(n.Notifications) == 0 {
		b.WriteString("  No notifications.\n\n")
		return
	}
	for i, note := range n.Notifications {
		pointer := " "
		if i == cursor {
			pointer = ">"
		}
		unread := " "
		if !note.Read {
			unread = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] %s: %s\n", pointer, unread, note.Type, note.Title, note.Message))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c         Quit\n")
	b.WriteString("  tab, shift+tab    Next / previous view\n")
	b.WriteString("  1-5               Jump to a view\n")
	b.WriteString("  up/k, down/j      Move the cursor\n")
	b.WriteString("  r, F5             Refresh\n")
	b.WriteString("  ?                 Toggle this help screen\n\n")
	b.WriteString("  Tasks:         x, space, enter toggle complete | f cycle filter\n")
	b.WriteString("  Calendar:      left/h, right/l move | t today | v day/week/month\n")
	b.WriteString("  Notifications: enter mark read | a mark all read | d dismiss\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(mutedStyle.Render("Press ? for help | q to quit") + "\n")
}

// styleTask colors overdue tasks and dims completed ones.
func styleTask(t queries.TaskDTO, line string) string {
	switch {
	case t.IsOverdue:
		return overdueStyle.Render(line)
	case t.Status == "completed":
		return mutedStyle.Render(line)
	default:
		return line
	}
}

func formatTask(t queries.TaskDTO, selected bool) string {
	pointer := " "
	if selected {
		pointer = ">"
	}
	statusIcon := " "
	switch t.Status {
	case "in-progress":
		statusIcon = ">"
	case "completed":
		statusIcon = "x"
	}

	line := fmt.Sprintf("%s [%s] %-6s %s", pointer, statusIcon, t.Priority, t.Title)
	switch {
	case t.IsOverdue:
		line += "  overdue " + t.Deadline
	case t.IsDueToday:
		line += "  due today"
	case t.Deadline != "":
		line += "  due " + t.Deadline
	}
	return line
}

func progressBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
