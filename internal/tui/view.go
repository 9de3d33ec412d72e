package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classlog/internal/attendance"
	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/productivity"
	"github.com/julianstephens/classlog/internal/semester"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case TabToday:
		content = m.dayView.View()
	case TabAttendance:
		content = renderAttendance(m.doc, m.entries, m.ctx.Clock(), m.ctx.Location())
	case TabProductivity:
		content = renderProductivity(m.entries, m.ctx.Clock())
	case TabReminders:
		content = m.reminderList.View()
	}

	status := mutedStyle.Render(m.status)
	if m.err != nil {
		status = dangerStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderAttendance shows the semester active at now, or the first one.
func renderAttendance(doc models.UserDocument, entries []models.DailyEntry, now time.Time, loc *time.Location) string {
	sem := semester.Resolve(constants.SemesterSelectorCurrent, doc.Semesters, now)
	if sem == nil {
		return "No semesters configured. Add one with 'classlog profile semester add'."
	}

	list := attendance.Ordered(*sem, attendance.AggregateIn(*sem, entries, loc))
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Semester %d", sem.SemesterNumber)) + "\n\n")
	for _, s := range list {
		pct := mutedStyle.Render(" --")
		if s.Total > 0 {
			pct = cli.BandStyle(s.Percentage).Render(fmt.Sprintf("%3d%%", s.Percentage))
		}
		fmt.Fprintf(&b, "%-8s %-28s %s  %d/%d", s.Code, s.Name, pct, s.Attended(), s.Total)
		if n := s.ClassesNeeded(); n > 0 {
			fmt.Fprintf(&b, "  ⚠ %d more to reach %d%%", n, constants.AttendanceThreshold)
		}
		b.WriteString("\n")
	}
	if overall := attendance.Overall(list); overall.Total > 0 {
		fmt.Fprintf(&b, "\nOverall %s\n", cli.BandStyle(overall.Percentage).Render(fmt.Sprintf("%d%%", overall.Percentage)))
	}
	return b.String()
}

func renderProductivity(entries []models.DailyEntry, now time.Time) string {
	dash := productivity.Summarize(entries, now)

	var b strings.Builder
	b.WriteString(headerStyle.Render("Productivity index") + "\n\n")
	for _, w := range productivity.Windows {
		r := productivity.AggregateWindow(entries, w, now)
		index := mutedStyle.Render(" --")
		if r.HoursLogged > 0 {
			index = cli.BandStyle(r.Index).Render(fmt.Sprintf("%3d%%", r.Index))
		}
		fmt.Fprintf(&b, "%-6s %s  %d hour(s)\n", w, index, r.HoursLogged)
	}

	b.WriteString("\n" + headerStyle.Render("Recent activity") + "\n\n")
	if len(dash.Recent) == 0 {
		b.WriteString(mutedStyle.Render("Nothing logged yet.") + "\n")
	}
	for _, a := range dash.Recent {
		fmt.Fprintf(&b, "%s  %2d hour(s)  %s\n", a.Date.Format(constants.DateFormat), a.HoursLogged, a.Reflection)
	}
	return b.String()
}
