package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/classlog/internal/tui/components/reminderlist"
	"github.com/julianstephens/classlog/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status and help take the remaining rows
		m.dayView.SetSize(msg.Width-4, msg.Height-8)
		m.reminderList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case reminderlist.ToggleReminderMsg:
		m.toggleReminder(msg.ID)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % Tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + Tab(len(tabTitles))) % Tab(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.err = m.load()
			m.status = "Reloaded"
			return m, nil
		}

		if m.state == TabToday {
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				m.day = m.day.AddDate(0, 0, -1)
				m.refreshDay()
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				m.day = m.day.AddDate(0, 0, 1)
				m.refreshDay()
				return m, nil
			case key.Matches(msg, m.keys.Today):
				m.day = utils.StartOfDay(m.ctx.Clock())
				m.refreshDay()
				return m, nil
			}
		}
	}

	switch m.state {
	case TabToday:
		m.dayView, cmd = m.dayView.Update(msg)
	case TabReminders:
		m.reminderList, cmd = m.reminderList.Update(msg)
	}
	return m, cmd
}
