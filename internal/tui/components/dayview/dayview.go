// Package dayview renders one tracked day slot by slot.
package dayview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/slots"
	"github.com/julianstephens/classlog/internal/tracker"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(16)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

type Model struct {
	viewport viewport.Model
	plan     *slots.Plan
	day      tracker.Day
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.plan == nil {
		return "No profile loaded. Run 'classlog init' first."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetDay shows day laid out over plan's slots.
func (m *Model) SetDay(plan slots.Plan, day tracker.Day) {
	m.plan = &plan
	m.day = day
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.plan == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(Content(*m.plan, m.day))
}

// Content is the text of the day view.
func Content(plan slots.Plan, day tracker.Day) string {
	var b strings.Builder
	title := fmt.Sprintf("%s · %s day", day.Date.Format("Mon, 02 Jan 2006"), plan.DayType)
	if plan.Semester != nil {
		title += fmt.Sprintf(" · Semester %d", plan.Semester.SemesterNumber)
	}
	b.WriteString(title + "\n\n")
	if plan.NeedsSemester() {
		b.WriteString(breakStyle.Render("No active semester: college hours collect no subject.") + "\n\n")
	}

	for _, slot := range plan.Slots {
		line := timeStyle.Render(slot.Time) + labelStyle.Render(slot.Label)
		switch {
		case !slot.AcceptsRecord():
			line += breakStyle.Render("break")
		default:
			if rec, ok := day.Hour(slot.Time); ok {
				line += summary(rec, slot)
			} else {
				line += emptyStyle.Render("·")
			}
		}
		b.WriteString(line + "\n")
	}

	if day.DailyReflection != "" {
		b.WriteString("\n" + day.DailyReflection + "\n")
	}
	return b.String()
}

func summary(rec models.HourRecord, slot models.Slot) string {
	var parts []string
	if slot.IsCollegeHour() {
		if rec.Subject != "" {
			parts = append(parts, rec.Subject)
		}
		if rec.Attendance != "" {
			parts = append(parts, string(rec.Attendance))
		}
		if rec.Unit > 0 {
			parts = append(parts, fmt.Sprintf("unit %d", rec.Unit))
		}
	} else {
		if rec.Activity != "" {
			parts = append(parts, rec.Activity)
		}
		if rec.ProductivityLevel > 0 {
			parts = append(parts, fmt.Sprintf("×%d", rec.ProductivityLevel))
		}
	}
	if rec.Notes != "" {
		parts = append(parts, rec.Notes)
	}
	return strings.Join(parts, " · ")
}
