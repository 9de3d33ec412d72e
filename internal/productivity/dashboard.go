package productivity

import (
	"time"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
)

const reflectionPreviewLen = 100

// Activity summarises one recent daily entry.
type Activity struct {
	Date        time.Time
	HoursLogged int
	Reflection  string
}

// Dashboard holds the headline numbers shown on the home screen.
type Dashboard struct {
	Today  Result
	Week   Result
	Month  Result
	Recent []Activity
}

// Summarize builds the dashboard for now from the full entry history.
func Summarize(entries []models.DailyEntry, now time.Time) Dashboard {
	d := Dashboard{
		Today: AggregateWindow(entries, WindowToday, now),
		Week:  AggregateWindow(entries, WindowWeek, now),
		Month: AggregateWindow(entries, WindowMonth, now),
	}
	for _, e := range Recent(entries, constants.RecentActivityLimit) {
		d.Recent = append(d.Recent, Activity{
			Date:        e.Date,
			HoursLogged: len(e.Hours),
			Reflection:  Preview(e.DailyReflection),
		})
	}
	return d
}

// Preview truncates a reflection for list display.
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= reflectionPreviewLen {
		return s
	}
	return string(r[:reflectionPreviewLen]) + "..."
}
