// Package draft holds the editable copy of a user's profile and roster.
//
// A Draft is a plain serialisable value. Every edit goes through Reduce,
// which returns a new Draft and never mutates the one it was given, so a
// form can keep the previous state, undo, or persist the draft between steps.
package draft

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnknownAction   = errors.New("unknown action")
)

const (
	FirstStep = 1
	LastStep  = 4
)

type Draft struct {
	Doc  models.UserDocument `json:"doc"`
	Step int                 `json:"step"`
}

// New starts a draft from an existing document.
func New(doc models.UserDocument) Draft {
	return Draft{Doc: doc.Clone(), Step: FirstStep}
}

// Onboarding returns the draft a new user starts from.
func Onboarding() Draft {
	return Draft{
		Doc: models.UserDocument{
			ScheduleProfile: models.ScheduleProfile{
				WakeUpTime:             constants.DefaultWakeUpTime,
				BusToCollegeStart:      constants.DefaultBusToCollegeStart,
				BusToCollegeEnd:        constants.DefaultBusToCollegeEnd,
				PrepTimeStart:          constants.DefaultPrepTimeStart,
				PrepTimeEnd:            constants.DefaultPrepTimeEnd,
				CollegeStart:           constants.DefaultCollegeStart,
				CollegeEnd:             constants.DefaultCollegeEnd,
				BusReturnStart:         constants.DefaultBusReturnStart,
				BusReturnEnd:           constants.DefaultBusReturnEnd,
				RefreshTimeStart:       constants.DefaultRefreshTimeStart,
				RefreshTimeEnd:         constants.DefaultRefreshTimeEnd,
				ActiveEveningStart:     constants.DefaultActiveEveningStart,
				ActiveEveningEnd:       constants.DefaultActiveEveningEnd,
				UsualSleepTime:         constants.DefaultUsualSleepTime,
				ResidenceType:          models.ResidenceDayScholar,
				ProductiveActivities:   []string{""},
				UnproductiveActivities: []string{""},
			},
			Semesters: []models.Semester{newSemester(1)},
		},
		Step: FirstStep,
	}
}

// NewSubject returns an empty theory subject with the default unit slots.
func NewSubject() models.Subject {
	units := make([]models.Unit, constants.DefaultUnitsPerCourse)
	for i := range units {
		units[i] = models.Unit{Number: i + 1}
	}
	return models.Subject{
		CourseType: models.CourseTheory,
		Units:      units,
	}
}

func newSemester(number int) models.Semester {
	return models.Semester{
		SemesterNumber: number,
		Subjects:       []models.Subject{NewSubject()},
	}
}

// scheduleFields maps JSON field names to the profile's time fields.
var scheduleFields = map[string]func(*models.ScheduleProfile) *string{
	"wakeUpTime":         func(p *models.ScheduleProfile) *string { return &p.WakeUpTime },
	"usualSleepTime":     func(p *models.ScheduleProfile) *string { return &p.UsualSleepTime },
	"collegeStart":       func(p *models.ScheduleProfile) *string { return &p.CollegeStart },
	"collegeEnd":         func(p *models.ScheduleProfile) *string { return &p.CollegeEnd },
	"activeEveningStart": func(p *models.ScheduleProfile) *string { return &p.ActiveEveningStart },
	"activeEveningEnd":   func(p *models.ScheduleProfile) *string { return &p.ActiveEveningEnd },
	"prepTimeStart":      func(p *models.ScheduleProfile) *string { return &p.PrepTimeStart },
	"prepTimeEnd":        func(p *models.ScheduleProfile) *string { return &p.PrepTimeEnd },
	"refreshTimeStart":   func(p *models.ScheduleProfile) *string { return &p.RefreshTimeStart },
	"refreshTimeEnd":     func(p *models.ScheduleProfile) *string { return &p.RefreshTimeEnd },
	"busToCollegeStart":  func(p *models.ScheduleProfile) *string { return &p.BusToCollegeStart },
	"busToCollegeEnd":    func(p *models.ScheduleProfile) *string { return &p.BusToCollegeEnd },
	"busReturnStart":     func(p *models.ScheduleProfile) *string { return &p.BusReturnStart },
	"busReturnEnd":       func(p *models.ScheduleProfile) *string { return &p.BusReturnEnd },
}

// ScheduleFields lists the editable schedule time fields.
func ScheduleFields() []string {
	return []string{
		"wakeUpTime", "prepTimeStart", "prepTimeEnd",
		"busToCollegeStart", "busToCollegeEnd",
		"collegeStart", "collegeEnd",
		"busReturnStart", "busReturnEnd",
		"refreshTimeStart", "refreshTimeEnd",
		"activeEveningStart", "activeEveningEnd",
		"usualSleepTime",
	}
}

func activityList(doc *models.UserDocument, field string) (*[]string, error) {
	switch field {
	case "productiveActivities":
		return &doc.ProductiveActivities, nil
	case "unproductiveActivities":
		return &doc.UnproductiveActivities, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

func semesterAt(doc *models.UserDocument, i int) (*models.Semester, error) {
	if i < 0 || i >= len(doc.Semesters) {
		return nil, fmt.Errorf("%w: semester %d", ErrIndexOutOfRange, i)
	}
	return &doc.Semesters[i], nil
}

func subjectAt(doc *models.UserDocument, semIdx, subIdx int) (*models.Subject, error) {
	sem, err := semesterAt(doc, semIdx)
	if err != nil {
		return nil, err
	}
	if subIdx < 0 || subIdx >= len(sem.Subjects) {
		return nil, fmt.Errorf("%w: subject %d", ErrIndexOutOfRange, subIdx)
	}
	return &sem.Subjects[subIdx], nil
}

func parseBool(v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
	}
	return b, nil
}
