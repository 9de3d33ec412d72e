package models

import "time"

// ResidenceType decides whether bus slots are tracked on college days.
type ResidenceType string

const (
	ResidenceDayScholar ResidenceType = "day-scholar"
	ResidenceHosteller  ResidenceType = "hosteller"
)

// ScheduleProfile is the user's daily time-block configuration.
// All times are wall-clock HH:MM; only the hour matters for slot generation.
type ScheduleProfile struct {
	WakeUpTime         string `json:"wakeUpTime,omitempty" yaml:"wakeUpTime,omitempty" validate:"omitempty,hhmm"`
	UsualSleepTime     string `json:"usualSleepTime,omitempty" yaml:"usualSleepTime,omitempty" validate:"omitempty,hhmm"`
	CollegeStart       string `json:"collegeStart,omitempty" yaml:"collegeStart,omitempty" validate:"omitempty,hhmm"`
	CollegeEnd         string `json:"collegeEnd,omitempty" yaml:"collegeEnd,omitempty" validate:"omitempty,hhmm"`
	ActiveEveningStart string `json:"activeEveningStart,omitempty" yaml:"activeEveningStart,omitempty" validate:"omitempty,hhmm"`
	ActiveEveningEnd   string `json:"activeEveningEnd,omitempty" yaml:"activeEveningEnd,omitempty" validate:"omitempty,hhmm"`
	PrepTimeStart      string `json:"prepTimeStart,omitempty" yaml:"prepTimeStart,omitempty" validate:"omitempty,hhmm"`       // untracked
	PrepTimeEnd        string `json:"prepTimeEnd,omitempty" yaml:"prepTimeEnd,omitempty" validate:"omitempty,hhmm"`           // untracked
	RefreshTimeStart   string `json:"refreshTimeStart,omitempty" yaml:"refreshTimeStart,omitempty" validate:"omitempty,hhmm"` // untracked
	RefreshTimeEnd     string `json:"refreshTimeEnd,omitempty" yaml:"refreshTimeEnd,omitempty" validate:"omitempty,hhmm"`     // untracked
	BusToCollegeStart  string `json:"busToCollegeStart,omitempty" yaml:"busToCollegeStart,omitempty" validate:"omitempty,hhmm"`
	BusToCollegeEnd    string `json:"busToCollegeEnd,omitempty" yaml:"busToCollegeEnd,omitempty" validate:"omitempty,hhmm"`
	BusReturnStart     string `json:"busReturnStart,omitempty" yaml:"busReturnStart,omitempty" validate:"omitempty,hhmm"`
	BusReturnEnd       string `json:"busReturnEnd,omitempty" yaml:"busReturnEnd,omitempty" validate:"omitempty,hhmm"`

	ResidenceType       ResidenceType `json:"residenceType,omitempty" yaml:"residenceType,omitempty" validate:"omitempty,oneof=day-scholar hosteller"`
	EnableHealthMetrics bool          `json:"enableHealthMetrics" yaml:"enableHealthMetrics"`

	ProductiveActivities   []string `json:"productiveActivities" yaml:"productiveActivities"`
	UnproductiveActivities []string `json:"unproductiveActivities" yaml:"unproductiveActivities"`
}

// IsDayScholar reports whether the user commutes to college.
func (p ScheduleProfile) IsDayScholar() bool {
	return p.ResidenceType == ResidenceDayScholar
}

// UserDocument is the persisted shape of users/{userId}.
type UserDocument struct {
	ScheduleProfile    `yaml:",inline"`
	Semesters          []Semester `json:"semesters" yaml:"semesters" validate:"dive"`
	OnboardingComplete bool       `json:"onboardingComplete" yaml:"onboardingComplete"`
	CompletedAt        *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Clone returns a deep copy of the document.
func (d UserDocument) Clone() UserDocument {
	out := d
	out.ProductiveActivities = append([]string(nil), d.ProductiveActivities...)
	out.UnproductiveActivities = append([]string(nil), d.UnproductiveActivities...)
	if d.CompletedAt != nil {
		t := *d.CompletedAt
		out.CompletedAt = &t
	}
	if d.Semesters != nil {
		out.Semesters = make([]Semester, len(d.Semesters))
		for i, sem := range d.Semesters {
			out.Semesters[i] = sem.Clone()
		}
	}
	return out
}
