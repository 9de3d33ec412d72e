package productivity

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/classlog/internal/models"
)

func entryOn(t time.Time, levels ...int) models.DailyEntry {
	e := models.DailyEntry{UserID: "u1", Date: t, DayType: models.DayNonCollege}
	for i, l := range levels {
		e.Hours = append(e.Hours, models.HourRecord{
			Time:              time.Date(0, 1, 1, 6+i, 0, 0, 0, time.UTC).Format("15:04"),
			ProductivityLevel: l,
		})
	}
	return e
}

func TestAggregate_IndexExample(t *testing.T) {
	now := time.Date(2026, 10, 17, 14, 0, 0, 0, time.Local)
	entries := []models.DailyEntry{entryOn(time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local), 1, 2, 10)}

	got := AggregateWindow(entries, WindowToday, now)
	if got.HoursLogged != 3 {
		t.Errorf("HoursLogged = %d, want 3", got.HoursLogged)
	}
	if got.Index != 43 {
		t.Errorf("Index = %d, want 43", got.Index)
	}
}

func TestAggregate_Windows(t *testing.T) {
	// Saturday 2026-10-17; week is Mon 10-12 .. Sun 10-18
	now := time.Date(2026, 10, 17, 20, 0, 0, 0, time.Local)
	d := func(day int) time.Time { return time.Date(2026, 10, day, 0, 0, 0, 0, time.Local) }

	college := entryOn(d(16))
	college.DayType = models.DayCollege
	college.Hours = []models.HourRecord{
		{Time: "08:00", Subject: "UIT101", Attendance: models.AttendancePresent},
		{Time: "18:00", ProductivityLevel: 10},
	}

	entries := []models.DailyEntry{
		entryOn(d(17), 10, 10),
		college,
		entryOn(d(11), 5), // previous week, same month
		entryOn(d(1), 1),
		entryOn(time.Date(2026, 9, 30, 0, 0, 0, 0, time.Local), 10),
		{Hours: []models.HourRecord{{Time: "06:00", ProductivityLevel: 10}}}, // no date
	}

	tests := []struct {
		window    Window
		wantHours int
		wantIndex int
	}{
		{WindowToday, 2, 100},
		{WindowWeek, 4, 75},  // 30 / 40
		{WindowMonth, 6, 60}, // 36 / 60
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			got := AggregateWindow(entries, tt.window, now)
			if got.HoursLogged != tt.wantHours || got.Index != tt.wantIndex {
				t.Errorf("got %+v, want hours=%d index=%d", got, tt.wantHours, tt.wantIndex)
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := AggregateWindow(nil, WindowMonth, time.Now())
	if got.Index != 0 || got.HoursLogged != 0 {
		t.Errorf("got %+v, want zero result", got)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)
	entries := []models.DailyEntry{
		entryOn(time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local), 2, 5),
		entryOn(time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local), 1),
	}
	a := Summarize(entries, now)
	b := Summarize(entries, now)
	if !reflect.DeepEqual(a, b) {
		t.Error("Summarize is not idempotent")
	}
}

func TestRecent(t *testing.T) {
	var entries []models.DailyEntry
	for i := 1; i <= 8; i++ {
		entries = append(entries, entryOn(time.Date(2026, 10, i, 0, 0, 0, 0, time.Local)))
	}
	entries = append(entries, models.DailyEntry{DailyReflection: "undated"})

	got := Recent(entries, 5)
	if len(got) != 5 {
		t.Fatalf("Recent() returned %d entries, want 5", len(got))
	}
	for i, e := range got {
		if want := 8 - i; e.Date.Day() != want {
			t.Errorf("got[%d] day = %d, want %d", i, e.Date.Day(), want)
		}
	}
	if entries[0].Date.Day() != 1 {
		t.Error("Recent must not reorder its input")
	}
}

func TestParseWindow(t *testing.T) {
	for _, s := range []string{"today", "Week", " month "} {
		if _, err := ParseWindow(s); err != nil {
			t.Errorf("ParseWindow(%q) error = %v", s, err)
		}
	}
	if _, err := ParseWindow("year"); err == nil {
		t.Error("expected error for unknown window")
	}
}

func TestSummarize_RecentPreview(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local)
	e := entryOn(time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local), 5)
	e.DailyReflection = strings.Repeat("a", 120)

	d := Summarize([]models.DailyEntry{e}, now)
	if len(d.Recent) != 1 {
		t.Fatalf("expected 1 recent activity, got %d", len(d.Recent))
	}
	if got := d.Recent[0].Reflection; len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("preview = %q", got)
	}
	if d.Recent[0].HoursLogged != 1 {
		t.Errorf("HoursLogged = %d, want 1", d.Recent[0].HoursLogged)
	}
	if d.Today.Index != 50 {
		t.Errorf("Today.Index = %d, want 50", d.Today.Index)
	}
}
