package slots

import "github.com/julianstephens/classlog/internal/models"

// Period is one row of the fixed academic timetable.
type Period struct {
	Time  string
	Label string
}

// Timetable is the college-day period table. It is not derived from the
// profile's collegeStart/collegeEnd.
var Timetable = []Period{
	{Time: "08:00", Label: "1st Hour"},
	{Time: "08:45", Label: "2nd Hour"},
	{Time: "09:30", Label: "Break"},
	{Time: "09:50", Label: "3rd Hour"},
	{Time: "10:35", Label: "4th Hour"},
	{Time: "11:20", Label: "5th Hour"},
	{Time: "12:05", Label: "Lunch Break"},
	{Time: "13:05", Label: "6th Hour"},
	{Time: "13:50", Label: "7th Hour"},
	{Time: "14:35", Label: "8th Hour"},
}

// Kind classifies a period: labels mentioning a break or lunch collect no data.
func (p Period) Kind() models.SlotKind {
	if containsAny(p.Label, "Break", "Lunch") {
		return models.SlotBreak
	}
	return models.SlotCollegeHour
}

const (
	busToCollegeLabel = "Bus to College"
	busReturnLabel    = "Bus Return"
)
