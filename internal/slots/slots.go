package slots

import (
	"strings"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

// Plan is the ordered set of slots for one day together with the semester
// whose roster feeds the college-hour subject choices.
type Plan struct {
	DayType  models.DayType
	Slots    []models.Slot
	Semester *models.Semester // nil when no semester covers the day
}

// Slot returns the slot at the given HH:MM time.
func (p Plan) Slot(t string) (models.Slot, bool) {
	for _, s := range p.Slots {
		if s.Time == t {
			return s, true
		}
	}
	return models.Slot{}, false
}

// Subjects returns the subject choices for college hours.
func (p Plan) Subjects() []models.Subject {
	if p.Semester == nil {
		return nil
	}
	return p.Semester.Subjects
}

// NeedsSemester reports whether the plan has college hours but no roster to
// pick subjects from.
func (p Plan) NeedsSemester() bool {
	if p.Semester != nil {
		return false
	}
	for _, s := range p.Slots {
		if s.IsCollegeHour() {
			return true
		}
	}
	return false
}

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate builds the slot plan for a day. It never fails: a profile time
// that is unset or unparseable drops the segment that depends on it.
func (g *Generator) Generate(dayType models.DayType, profile models.ScheduleProfile, active *models.Semester) Plan {
	plan := Plan{
		DayType:  dayType,
		Semester: active,
	}

	if dayType == models.DayCollege {
		plan.Slots = g.collegeDay(profile)
	} else {
		plan.Slots = g.nonCollegeDay(profile)
	}
	if plan.Slots == nil {
		plan.Slots = []models.Slot{}
	}
	return plan
}

func (g *Generator) collegeDay(profile models.ScheduleProfile) []models.Slot {
	var slots []models.Slot

	// Step 1: hours between waking up and prep
	wake, okWake := utils.ParseHour(profile.WakeUpTime)
	prep, okPrep := utils.ParseHour(profile.PrepTimeStart)
	if okWake && okPrep {
		slots = append(slots, hourRange(wake, prep-1, models.SlotPreCollege)...)
	}

	// Step 2: commute
	if profile.IsDayScholar() {
		slots = append(slots, models.Slot{
			Time:  orDefault(profile.BusToCollegeStart, constants.DefaultBusToCollegeStart),
			Label: busToCollegeLabel,
			Kind:  models.SlotBusToCollege,
		})
	}

	// Step 3: fixed timetable
	for _, period := range Timetable {
		slots = append(slots, models.Slot{
			Time:  period.Time,
			Label: period.Label,
			Kind:  period.Kind(),
		})
	}

	// Step 4: commute back
	if profile.IsDayScholar() {
		slots = append(slots, models.Slot{
			Time:  orDefault(profile.BusReturnStart, constants.DefaultBusReturnStart),
			Label: busReturnLabel,
			Kind:  models.SlotBusReturn,
		})
	}

	// Step 5: evening, end hour inclusive
	start, okStart := utils.ParseHour(profile.ActiveEveningStart)
	end, okEnd := utils.ParseHour(profile.ActiveEveningEnd)
	if okStart && okEnd {
		slots = append(slots, hourRange(start, end, models.SlotEvening)...)
	}

	return slots
}

// nonCollegeDay tracks every hour from waking up until the sleep hour,
// never past the last hour of the day.
func (g *Generator) nonCollegeDay(profile models.ScheduleProfile) []models.Slot {
	wake, okWake := utils.ParseHour(profile.WakeUpTime)
	sleep, okSleep := utils.ParseHour(profile.UsualSleepTime)
	if !okWake || !okSleep {
		return nil
	}

	var slots []models.Slot
	for h := wake; h <= constants.LastTrackedHour; h++ {
		slots = append(slots, hourSlot(h, models.SlotRegular))
		if h == sleep {
			break
		}
	}
	return slots
}

func hourRange(from, to int, kind models.SlotKind) []models.Slot {
	var slots []models.Slot
	for h := from; h <= to; h++ {
		slots = append(slots, hourSlot(h, kind))
	}
	return slots
}

func hourSlot(h int, kind models.SlotKind) models.Slot {
	return models.Slot{
		Time:  utils.HourTime(h),
		Label: utils.HourLabel(h),
		Kind:  kind,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
