package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/constants"
)

type DayType string

const (
	DayCollege    DayType = "college"
	DayNonCollege DayType = "non-college"
)

type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceOnDuty    AttendanceStatus = "onduty"
	AttendanceCancelled AttendanceStatus = "cancelled"
)

// AttendanceStatuses lists the recognised statuses in display order.
var AttendanceStatuses = []AttendanceStatus{
	AttendancePresent,
	AttendanceAbsent,
	AttendanceOnDuty,
	AttendanceCancelled,
}

// Valid reports whether the status is one of the recognised values.
func (s AttendanceStatus) Valid() bool {
	for _, st := range AttendanceStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// ValidProductivityLevel reports whether level is an admissible per-hour
// productivity rating.
func ValidProductivityLevel(level int) bool {
	for _, l := range constants.ProductivityLevels {
		if l == level {
			return true
		}
	}
	return false
}

// UnitNumber references a unit of the hour's subject. Zero means no unit.
// Older documents stored the unit as a string ("3"), so both forms decode.
type UnitNumber int

func (u UnitNumber) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(u))), nil
}

func (u *UnitNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*u = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid unit number %q: %w", s, err)
		}
		*u = UnitNumber(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*u = UnitNumber(n)
	return nil
}

// HourRecord is the data logged against one slot. College hours use Subject,
// Unit and Attendance; every other non-break slot uses Activity and
// ProductivityLevel.
type HourRecord struct {
	Time              string           `json:"time"` // HH:MM format
	Subject           string           `json:"subject,omitempty"`
	Unit              UnitNumber       `json:"unit,omitempty"`
	Attendance        AttendanceStatus `json:"attendance,omitempty"`
	Activity          string           `json:"activity,omitempty"`
	ProductivityLevel int              `json:"productivityLevel,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// DailyEntry is the persisted shape of dailyEntries/{userId}_{yyyy-MM-dd}.
type DailyEntry struct {
	UserID          string       `json:"userId"`
	Date            time.Time    `json:"date"` // calendar date at local midnight
	DayType         DayType      `json:"dayType"`
	Hours           []HourRecord `json:"hours"`
	DailyReflection string       `json:"dailyReflection"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Day returns the entry's calendar date (YYYY-MM-DD).
func (e DailyEntry) Day() string {
	return e.Date.Format(constants.DateFormat)
}

// Hour returns the record logged at the given HH:MM time.
func (e DailyEntry) Hour(t string) (HourRecord, bool) {
	for _, h := range e.Hours {
		if h.Time == t {
			return h, true
		}
	}
	return HourRecord{}, false
}

// EntryKey builds the storage key shared by daily entries and health metrics.
func EntryKey(userID, day string) string {
	return userID + "_" + day
}
