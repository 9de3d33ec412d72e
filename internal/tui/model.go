package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/reminders"
	"github.com/julianstephens/classlog/internal/semester"
	"github.com/julianstephens/classlog/internal/tracker"
	"github.com/julianstephens/classlog/internal/tui/components/dayview"
	"github.com/julianstephens/classlog/internal/tui/components/reminderlist"
	"github.com/julianstephens/classlog/internal/utils"
)

type Tab int

const (
	TabToday Tab = iota
	TabAttendance
	TabProductivity
	TabReminders
)

var tabTitles = []string{"Today", "Attendance", "Productivity", "Reminders"}

type Model struct {
	ctx    *cli.Context
	userID string

	// snapshot of the store, refreshed by load
	doc       models.UserDocument
	entries   []models.DailyEntry
	reminders []models.Reminder

	day          time.Time // day shown on the Today tab
	state        Tab
	keys         KeyMap
	help         help.Model
	dayView      dayview.Model
	reminderList reminderlist.Model
	status       string
	err          error
	quitting     bool
	width        int
	height       int
}

// NewModel loads the active user's data from ctx's store.
func NewModel(ctx *cli.Context) (Model, error) {
	m := Model{
		ctx:          ctx,
		day:          utils.StartOfDay(ctx.Clock()),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dayView:      dayview.New(0, 0),
		reminderList: reminderlist.New(0, 0),
	}
	if err := m.load(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case TabToday:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay)
	case TabReminders:
		keys = append(keys, reminderlist.DefaultKeyMap().Toggle)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case TabToday:
		actions = []key.Binding{m.keys.PrevDay, m.keys.NextDay, m.keys.Today}
	case TabReminders:
		actions = []key.Binding{reminderlist.DefaultKeyMap().Toggle}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// load re-reads the profile, entries and reminders.
func (m *Model) load() error {
	userID, doc, err := m.ctx.LoadUser()
	if err != nil {
		return err
	}
	entries, err := m.ctx.Store.ListDailyEntries(userID)
	if err != nil {
		return fmt.Errorf("failed to load daily entries: %w", err)
	}
	list, err := m.ctx.Store.ListReminders(userID)
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}

	m.userID, m.doc, m.entries, m.reminders = userID, doc, entries, list
	m.refreshDay()
	m.reminderList.SetReminders(list, m.ctx.Clock())
	return nil
}

// currentDay returns the stored draft for m.day or a new college day.
func (m Model) currentDay() tracker.Day {
	want := utils.Today(m.day)
	for _, e := range m.entries {
		if e.Day() == want {
			return tracker.FromEntry(e)
		}
	}
	return tracker.NewDay(m.day)
}

func (m *Model) refreshDay() {
	day := m.currentDay()
	active := semester.ActiveOn(m.doc.Semesters, day.Date)
	plan := m.ctx.Generator().Generate(day.DayType, m.doc.ScheduleProfile, active)
	m.dayView.SetDay(plan, day)
}

func (m *Model) toggleReminder(id string) {
	for _, r := range m.reminders {
		if r.ID != id {
			continue
		}
		r = reminders.Toggle(r, m.ctx.Clock())
		if err := m.ctx.Store.UpdateReminder(r); err != nil {
			m.err = fmt.Errorf("failed to update reminder: %w", err)
			return
		}
		if r.Completed {
			m.status = "✓ Completed " + r.Name
		} else {
			m.status = "Reopened " + r.Name
		}
		m.err = m.load()
		return
	}
}
