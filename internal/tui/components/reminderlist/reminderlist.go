// Package reminderlist is the selectable list of deadline reminders.
package reminderlist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/reminders"
)

// ToggleReminderMsg asks the parent to flip a reminder's completion.
type ToggleReminderMsg struct {
	ID string
}

type Item struct {
	Reminder models.Reminder
	Now      time.Time
}

func (i Item) Title() string {
	if i.Reminder.Completed {
		return "✓ " + i.Reminder.Name
	}
	switch reminders.StatusOf(i.Reminder.Deadline, i.Now) {
	case reminders.StatusOverdue:
		return "❌ " + i.Reminder.Name
	case reminders.StatusToday:
		return "⚠ " + i.Reminder.Name
	}
	return i.Reminder.Name
}

func (i Item) Description() string {
	desc := i.Reminder.Deadline.Format("Mon 02 Jan 15:04") + " | " +
		humanize.RelTime(i.Reminder.Deadline, i.Now, "ago", "from now")
	if i.Reminder.Description != "" {
		desc += " | " + i.Reminder.Description
	}
	return desc
}

func (i Item) FilterValue() string { return i.Reminder.Name }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	return Model{list: l, keys: keys}
}

// SetReminders replaces the items, sorted by deadline.
func (m *Model) SetReminders(rs []models.Reminder, now time.Time) {
	sorted := append([]models.Reminder(nil), rs...)
	reminders.SortByDeadline(sorted)
	items := make([]list.Item, len(sorted))
	for i, r := range sorted {
		items[i] = Item{Reminder: r, Now: now}
	}
	m.list.SetItems(items)
}

// Selected returns the highlighted reminder.
func (m Model) Selected() (models.Reminder, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Reminder, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Toggle) {
			if r, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleReminderMsg{ID: r.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No reminders yet.\n  Add one with 'classlog remind add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
