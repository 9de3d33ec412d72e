// Package tracker holds the editable state of one tracked day.
package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/models"
)

var (
	ErrUnknownField = errors.New("unknown hour field")
	ErrInvalidValue = errors.New("invalid hour value")
)

// Hour record fields that SetField accepts.
const (
	FieldSubject           = "subject"
	FieldUnit              = "unit"
	FieldAttendance        = "attendance"
	FieldActivity          = "activity"
	FieldProductivityLevel = "productivityLevel"
	FieldNotes             = "notes"
)

// Day is the draft of a daily entry. Records are kept in the order they
// were first touched, at most one per time.
type Day struct {
	Date            time.Time           `json:"date"`
	DayType         models.DayType      `json:"dayType"`
	Hours           []models.HourRecord `json:"hours"`
	DailyReflection string              `json:"dailyReflection"`
}

// NewDay returns an empty college day.
func NewDay(date time.Time) Day {
	return Day{
		Date:    startOfDay(date),
		DayType: models.DayCollege,
		Hours:   []models.HourRecord{},
	}
}

// FromEntry loads a stored entry. A missing day type reads as college.
func FromEntry(e models.DailyEntry) Day {
	d := Day{
		Date:            startOfDay(e.Date),
		DayType:         e.DayType,
		Hours:           append([]models.HourRecord{}, e.Hours...),
		DailyReflection: e.DailyReflection,
	}
	if d.DayType == "" {
		d.DayType = models.DayCollege
	}
	return d
}

// Hour returns the record at t.
func (d Day) Hour(t string) (models.HourRecord, bool) {
	for _, h := range d.Hours {
		if h.Time == t {
			return h, true
		}
	}
	return models.HourRecord{}, false
}

// ChangeDayType switches the day type. Switching clears every hour record.
func ChangeDayType(d Day, t models.DayType) Day {
	if t == d.DayType {
		return d
	}
	return Day{
		Date:            d.Date,
		DayType:         t,
		Hours:           []models.HourRecord{},
		DailyReflection: d.DailyReflection,
	}
}

// SetReflection replaces the daily reflection.
func SetReflection(d Day, text string) Day {
	d.Hours = append([]models.HourRecord{}, d.Hours...)
	d.DailyReflection = text
	return d
}

// SetField updates one field of the record at t, creating the record when
// the time has none yet. Choosing a subject on a record without attendance
// marks it present. The input day is not modified.
func SetField(d Day, t, field, value string) (Day, error) {
	hours := append([]models.HourRecord{}, d.Hours...)

	idx := -1
	for i := range hours {
		if hours[i].Time == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		hours = append(hours, models.HourRecord{Time: t})
		idx = len(hours) - 1
	}
	rec := &hours[idx]

	switch field {
	case FieldSubject:
		rec.Subject = value
		if value != "" && rec.Attendance == "" {
			rec.Attendance = models.AttendancePresent
		}
	case FieldUnit:
		n, err := parseInt(value)
		if err != nil || n < 0 {
			return d, fmt.Errorf("%w: unit %q", ErrInvalidValue, value)
		}
		rec.Unit = models.UnitNumber(n)
	case FieldAttendance:
		status := models.AttendanceStatus(value)
		if value != "" && !status.Valid() {
			return d, fmt.Errorf("%w: attendance %q", ErrInvalidValue, value)
		}
		rec.Attendance = status
	case FieldActivity:
		rec.Activity = value
	case FieldProductivityLevel:
		n, err := parseInt(value)
		if err != nil {
			return d, fmt.Errorf("%w: productivity level %q", ErrInvalidValue, value)
		}
		rec.ProductivityLevel = n
	case FieldNotes:
		rec.Notes = value
	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	d.Hours = hours
	return d, nil
}

// ToEntry builds the entry that is stored for the day. Records holding
// nothing but their time are dropped.
func (d Day) ToEntry(userID string, now time.Time) models.DailyEntry {
	hours := make([]models.HourRecord, 0, len(d.Hours))
	for _, h := range d.Hours {
		if isEmpty(h) {
			continue
		}
		hours = append(hours, h)
	}
	return models.DailyEntry{
		UserID:          userID,
		Date:            d.Date,
		DayType:         d.DayType,
		Hours:           hours,
		DailyReflection: d.DailyReflection,
		UpdatedAt:       now,
	}
}

func isEmpty(h models.HourRecord) bool {
	return h.Subject == "" && h.Unit == 0 && h.Attendance == "" &&
		h.Activity == "" && h.ProductivityLevel == 0 && h.Notes == ""
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
