package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/classlog/internal/attendance"
)

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#d32f2f"))
	OKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#2e7d32"))
)

// BandStyle colours a value by its attendance band.
func BandStyle(percentage int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(attendance.BandFor(percentage).Color()))
}
