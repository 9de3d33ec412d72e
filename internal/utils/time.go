package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ParseHour returns the hour component of a wall-clock "H:MM" or "HH:MM" string.
// Only the leading hour is read; minutes are ignored. ok is false when the
// string is empty or the hour is not an integer in [0, 23].
func ParseHour(timeStr string) (hour int, ok bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return 0, false
	}
	h, _, _ := strings.Cut(timeStr, ":")
	n, err := strconv.Atoi(h)
	if err != nil || n < 0 || n > 23 {
		return 0, false
	}
	return n, true
}

// HourTime formats an hour as a zero-padded "HH:00" slot time.
func HourTime(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// HourLabel formats an hour on a 12-hour clock. Hours above 12 wrap, hour 0
// stays 0, and the suffix flips to PM from hour 12 onwards.
func HourLabel(hour int) string {
	display := hour
	if hour > 12 {
		display = hour - 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	// Return the date at midnight in the specified timezone
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseDate parses a date string (YYYY-MM-DD) at local midnight.
func ParseDate(dateStr string) (time.Time, error) {
	return ParseDateInLocation(dateStr, time.Local)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last whole second of t's calendar day (23:59:59).
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DayBounds returns [00:00:00, 23:59:59] of t's calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	return StartOfDay(t), EndOfDay(t)
}

// WeekBounds returns the Monday-start week containing t, from Monday 00:00:00
// to Sunday 23:59:59.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	start := StartOfDay(t).AddDate(0, 0, -offset)
	end := EndOfDay(start.AddDate(0, 0, 6))
	return start, end
}

// MonthBounds returns the calendar month containing t, from the 1st 00:00:00
// to the last day 23:59:59.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := EndOfDay(start.AddDate(0, 1, -1))
	return start, end
}

// InRange reports whether t lies within [start, end] inclusive.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// Today returns the current local date (YYYY-MM-DD).
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}
