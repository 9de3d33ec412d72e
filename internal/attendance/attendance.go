// Package attendance turns logged college hours into per-subject attendance
// statistics scoped to a semester window.
package attendance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/semester"
)

// ClassRecord is one logged class in a subject's history.
type ClassRecord struct {
	Date       time.Time
	Time       string
	Attendance models.AttendanceStatus
	Unit       models.UnitNumber
	Notes      string
}

// SubjectStats accumulates attendance for one roster subject.
type SubjectStats struct {
	Code       string
	Name       string
	Faculty    string
	CourseType models.CourseType

	Present    int
	Absent     int
	OnDuty     int
	Cancelled  int
	Total      int
	Percentage int

	Classes []ClassRecord // newest first
}

// Attended counts classes that count toward the percentage.
func (s SubjectStats) Attended() int {
	return s.Present + s.OnDuty
}

// BelowThreshold reports whether the subject is under the required percentage.
func (s SubjectStats) BelowThreshold() bool {
	return s.Percentage < constants.AttendanceThreshold
}

// ClassesNeeded is the number of consecutive classes that must be attended to
// reach the threshold from the current totals. Zero when not below it.
func (s SubjectStats) ClassesNeeded() int {
	if s.Total == 0 || !s.BelowThreshold() {
		return 0
	}
	return ClassesNeeded(s.Attended(), s.Total)
}

// ClassesNeeded returns the smallest x with (attended+x)/(total+x) >= 75%.
func ClassesNeeded(attended, total int) int {
	// ceil((0.75*total - attended) / 0.25) without floating point error
	need := 3*total - 4*attended
	if need < 0 {
		return 0
	}
	return need
}

func (s *SubjectStats) record(status models.AttendanceStatus) bool {
	switch status {
	case models.AttendancePresent:
		s.Present++
	case models.AttendanceAbsent:
		s.Absent++
	case models.AttendanceOnDuty:
		s.OnDuty++
	case models.AttendanceCancelled:
		s.Cancelled++
	default:
		return false
	}
	s.Total++
	return true
}

// Aggregate computes statistics for every subject currently on the semester's
// roster, counting college-day entries inside the semester window. History
// logged against subjects no longer on the roster is not reported.
func Aggregate(sem models.Semester, entries []models.DailyEntry) map[string]SubjectStats {
	return AggregateIn(sem, entries, time.Local)
}

// AggregateIn is Aggregate with the semester window built in loc.
func AggregateIn(sem models.Semester, entries []models.DailyEntry, loc *time.Location) map[string]SubjectStats {
	stats := make(map[string]*SubjectStats, len(sem.Subjects))
	for _, sub := range sem.Subjects {
		stats[sub.Code] = &SubjectStats{
			Code:       sub.Code,
			Name:       sub.Name,
			Faculty:    sub.FacultyInitials,
			CourseType: sub.CourseType,
		}
	}

	// A semester without a usable window does not restrict dates.
	window, bounded := semester.WindowOf(sem, loc)

	for _, entry := range entries {
		if entry.DayType != models.DayCollege {
			continue
		}
		if bounded && !entry.Date.IsZero() && !window.Contains(entry.Date) {
			continue
		}

		for _, hour := range entry.Hours {
			code := strings.TrimSpace(hour.Subject)
			if code == "" {
				continue
			}
			s, ok := stats[code]
			if !ok {
				continue
			}

			status := hour.Attendance
			if status == "" {
				status = models.AttendancePresent
			}
			if !s.record(status) {
				continue
			}
			s.Classes = append(s.Classes, ClassRecord{
				Date:       entry.Date,
				Time:       hour.Time,
				Attendance: status,
				Unit:       hour.Unit,
				Notes:      hour.Notes,
			})
		}
	}

	result := make(map[string]SubjectStats, len(stats))
	for code, s := range stats {
		if s.Total > 0 {
			s.Percentage = Percentage(s.Attended(), s.Total)
		}
		sort.SliceStable(s.Classes, func(i, j int) bool {
			a, b := s.Classes[i], s.Classes[j]
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.Time < b.Time
		})
		result[code] = *s
	}
	return result
}

// Percentage returns round(100*attended/total), or 0 when total is 0.
func Percentage(attended, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(attended) / float64(total)))
}

// Ordered returns the statistics in roster order, each code once.
func Ordered(sem models.Semester, stats map[string]SubjectStats) []SubjectStats {
	out := make([]SubjectStats, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for _, sub := range sem.Subjects {
		if seen[sub.Code] {
			continue
		}
		if s, ok := stats[sub.Code]; ok {
			out = append(out, s)
			seen[sub.Code] = true
		}
	}
	return out
}

// FilterSubject keeps only the subject with the given code. "all" or an
// empty filter keeps everything.
func FilterSubject(list []SubjectStats, code string) []SubjectStats {
	if code == "" || code == "all" {
		return list
	}
	var out []SubjectStats
	for _, s := range list {
		if s.Code == code {
			out = append(out, s)
		}
	}
	return out
}

// Overall sums the counters of every subject in list.
func Overall(list []SubjectStats) SubjectStats {
	var total SubjectStats
	for _, s := range list {
		total.Present += s.Present
		total.Absent += s.Absent
		total.OnDuty += s.OnDuty
		total.Cancelled += s.Cancelled
		total.Total += s.Total
	}
	total.Percentage = Percentage(total.Attended(), total.Total)
	return total
}
