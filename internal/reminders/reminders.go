// Package reminders classifies, filters and exports deadline reminders.
package reminders

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusToday    Status = "today"
	StatusUpcoming Status = "upcoming"
)

// StatusOf classifies a deadline relative to now. A deadline earlier today
// is still "today".
func StatusOf(deadline, now time.Time) Status {
	start, end := utils.DayBounds(now)
	switch {
	case utils.InRange(deadline, start, end):
		return StatusToday
	case deadline.Before(now):
		return StatusOverdue
	default:
		return StatusUpcoming
	}
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter validates a filter name; empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("invalid filter %q: expected all, active or completed", s)
}

// Apply returns the reminders matching f, in their original order.
func (f Filter) Apply(list []models.Reminder) []models.Reminder {
	out := make([]models.Reminder, 0, len(list))
	for _, r := range list {
		switch f {
		case FilterActive:
			if r.Completed {
				continue
			}
		case FilterCompleted:
			if !r.Completed {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Counts tallies reminders for the filter tabs.
type Counts struct {
	All       int
	Active    int
	Completed int
}

func Count(list []models.Reminder) Counts {
	c := Counts{All: len(list)}
	for _, r := range list {
		if r.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// SortByDeadline orders reminders by deadline, earliest first.
func SortByDeadline(list []models.Reminder) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Deadline.Before(list[j].Deadline)
	})
}

// Toggle flips completion. Completing stamps CompletedAt with now,
// reopening clears it.
func Toggle(r models.Reminder, now time.Time) models.Reminder {
	r.Completed = !r.Completed
	if r.Completed {
		t := now
		r.CompletedAt = &t
	} else {
		r.CompletedAt = nil
	}
	return r
}

// AlertStart is the first day the reminder should alert on.
func AlertStart(r models.Reminder) time.Time {
	return utils.StartOfDay(r.Deadline).AddDate(0, 0, -r.ReminderPeriod)
}

// IsDue reports whether an open reminder is inside its alert period or
// past its deadline.
func IsDue(r models.Reminder, now time.Time) bool {
	if r.Completed {
		return false
	}
	return !now.Before(AlertStart(r))
}

// Due returns the open reminders that should alert now, earliest deadline first.
func Due(list []models.Reminder, now time.Time) []models.Reminder {
	var out []models.Reminder
	for _, r := range list {
		if IsDue(r, now) {
			out = append(out, r)
		}
	}
	SortByDeadline(out)
	return out
}
