// Package semester resolves which semester applies to a day.
package semester

import (
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

// Window is a semester's inclusive calendar range, from startDate 00:00:00
// to endDate 23:59:59.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return utils.InRange(t, w.Start, w.End)
}

// WindowOf returns the semester's window in loc. ok is false when either date
// is missing or malformed.
func WindowOf(sem models.Semester, loc *time.Location) (Window, bool) {
	if sem.StartDate == "" || sem.EndDate == "" {
		return Window{}, false
	}
	start, err := utils.ParseDateInLocation(sem.StartDate, loc)
	if err != nil {
		return Window{}, false
	}
	end, err := utils.ParseDateInLocation(sem.EndDate, loc)
	if err != nil {
		return Window{}, false
	}
	return Window{Start: start, End: utils.EndOfDay(end)}, true
}

// ActiveOn returns the first semester whose window contains day, or nil.
// Semesters without a usable window are skipped.
func ActiveOn(semesters []models.Semester, day time.Time) *models.Semester {
	for i := range semesters {
		w, ok := WindowOf(semesters[i], day.Location())
		if !ok {
			continue
		}
		if w.Contains(day) {
			return &semesters[i]
		}
	}
	return nil
}

// Resolve picks a semester by selector. "current" returns the semester active
// on today, falling back to the first semester in list order when none is.
// A numeric selector matches semesterNumber. Returns nil when nothing matches.
func Resolve(selector string, semesters []models.Semester, today time.Time) *models.Semester {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, constants.SemesterSelectorCurrent) {
		if len(semesters) == 0 {
			return nil
		}
		if sem := ActiveOn(semesters, today); sem != nil {
			return sem
		}
		return &semesters[0]
	}

	n, err := strconv.Atoi(selector)
	if err != nil {
		return nil
	}
	return ByNumber(semesters, n)
}

// ByNumber returns the semester with the given semesterNumber.
func ByNumber(semesters []models.Semester, number int) *models.Semester {
	for i := range semesters {
		if semesters[i].SemesterNumber == number {
			return &semesters[i]
		}
	}
	return nil
}
