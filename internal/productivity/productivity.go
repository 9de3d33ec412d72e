// Package productivity normalises per-hour effort ratings into a
// productivity index over day, week and month windows.
package productivity

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Windows lists the windows in display order.
var Windows = []Window{WindowToday, WindowWeek, WindowMonth}

// ParseWindow validates a window name.
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case WindowToday, WindowWeek, WindowMonth:
		return w, nil
	}
	return "", fmt.Errorf("invalid window %q: expected today, week or month", s)
}

// Bounds returns the inclusive range of the window containing now. Weeks
// start on Monday.
func (w Window) Bounds(now time.Time) (time.Time, time.Time) {
	switch w {
	case WindowWeek:
		return utils.WeekBounds(now)
	case WindowMonth:
		return utils.MonthBounds(now)
	default:
		return utils.DayBounds(now)
	}
}

// Result is the productivity index for a set of entries.
type Result struct {
	Index       int
	HoursLogged int
}

// Aggregate computes the index over entries dated within [start, end].
// Every logged hour counts toward the denominator; hours without a
// productivity level contribute nothing to the score.
func Aggregate(entries []models.DailyEntry, start, end time.Time) Result {
	hours, score := 0, 0
	for _, entry := range entries {
		if entry.Date.IsZero() || !utils.InRange(entry.Date, start, end) {
			continue
		}
		hours += len(entry.Hours)
		for _, h := range entry.Hours {
			score += h.ProductivityLevel
		}
	}
	return Result{
		Index:       Index(score, hours),
		HoursLogged: hours,
	}
}

// AggregateWindow computes the index over the window containing now.
func AggregateWindow(entries []models.DailyEntry, w Window, now time.Time) Result {
	start, end := w.Bounds(now)
	return Aggregate(entries, start, end)
}

// Index returns round(100 * score / (hours * max level)), or 0 without hours.
func Index(score, hours int) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(hours*constants.MaxProductivityLevel)))
}

// Recent returns up to n entries with the latest dates across the whole
// history, newest first. Entries without a date sort last.
func Recent(entries []models.DailyEntry, n int) []models.DailyEntry {
	sorted := make([]models.DailyEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
