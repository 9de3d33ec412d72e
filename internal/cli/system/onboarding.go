package system

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/utils"
)

var scheduleTitles = map[string]string{
	"wakeUpTime":         "Wake-up time",
	"prepTimeStart":      "Preparation starts",
	"prepTimeEnd":        "Preparation ends",
	"busToCollegeStart":  "Bus to college departs",
	"busToCollegeEnd":    "Bus to college arrives",
	"collegeStart":       "College starts",
	"collegeEnd":         "College ends",
	"busReturnStart":     "Return bus departs",
	"busReturnEnd":       "Return bus arrives",
	"refreshTimeStart":   "Refresh time starts",
	"refreshTimeEnd":     "Refresh time ends",
	"activeEveningStart": "Active evening starts",
	"activeEveningEnd":   "Active evening ends",
	"usualSleepTime":     "Usual sleep time",
}

// onboardingAnswers collects the form values before they become draft
// actions.
type onboardingAnswers struct {
	fields       []string
	times        []string
	residence    string
	health       bool
	productive   string
	unproductive string

	semesterNumber string
	startDate      string
	endDate        string
	subjects       []cli.SubjectArg
}

func newOnboardingAnswers(doc models.UserDocument) *onboardingAnswers {
	a := &onboardingAnswers{
		fields:         draft.ScheduleFields(),
		residence:      string(doc.ResidenceType),
		health:         doc.EnableHealthMetrics,
		semesterNumber: "1",
	}
	for _, f := range a.fields {
		a.times = append(a.times, scheduleValue(doc.ScheduleProfile, f))
	}
	return a
}

func scheduleValue(p models.ScheduleProfile, field string) string {
	switch field {
	case "wakeUpTime":
		return p.WakeUpTime
	case "usualSleepTime":
		return p.UsualSleepTime
	case "collegeStart":
		return p.CollegeStart
	case "collegeEnd":
		return p.CollegeEnd
	case "activeEveningStart":
		return p.ActiveEveningStart
	case "activeEveningEnd":
		return p.ActiveEveningEnd
	case "prepTimeStart":
		return p.PrepTimeStart
	case "prepTimeEnd":
		return p.PrepTimeEnd
	case "refreshTimeStart":
		return p.RefreshTimeStart
	case "refreshTimeEnd":
		return p.RefreshTimeEnd
	case "busToCollegeStart":
		return p.BusToCollegeStart
	case "busToCollegeEnd":
		return p.BusToCollegeEnd
	case "busReturnStart":
		return p.BusReturnStart
	case "busReturnEnd":
		return p.BusReturnEnd
	}
	return ""
}

// actions converts the answers into the draft edits of the four onboarding
// steps: schedule, residence and health, activities, semester.
func (a *onboardingAnswers) actions() ([]draft.Action, error) {
	var actions []draft.Action
	for i, f := range a.fields {
		actions = append(actions, draft.SetSchedule(f, a.times[i]))
	}
	actions = append(actions,
		draft.NextStep(),
		draft.SetResidence(models.ResidenceType(a.residence)),
		draft.SetHealthMetrics(a.health),
		draft.NextStep(),
	)
	actions = append(actions, activityActions("productiveActivities", splitList(a.productive))...)
	actions = append(actions, activityActions("unproductiveActivities", splitList(a.unproductive))...)
	actions = append(actions, draft.NextStep())

	number, err := strconv.Atoi(strings.TrimSpace(a.semesterNumber))
	if err != nil {
		return nil, fmt.Errorf("invalid semester number %q", a.semesterNumber)
	}
	actions = append(actions, cli.FillSemester(0, number, a.startDate, a.endDate, a.subjects)...)
	return actions, nil
}

// activityActions fills an activity list that starts with a single blank
// entry.
func activityActions(list string, values []string) []draft.Action {
	var actions []draft.Action
	for i, v := range values {
		if i > 0 {
			actions = append(actions, draft.AddActivity(list))
		}
		actions = append(actions, draft.SetActivity(list, i, v))
	}
	return actions
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validateTime(s string) error {
	if s == "" || utils.ValidateTimeFormat(s) {
		return nil
	}
	return fmt.Errorf("use HH:MM")
}

func validateDate(s string) error {
	if _, err := utils.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// runOnboarding asks for the profile in a sequence of forms and applies the
// answers to d.
func runOnboarding(d draft.Draft) (draft.Draft, error) {
	a := newOnboardingAnswers(d.Doc)

	var schedule []huh.Field
	for i, f := range a.fields {
		schedule = append(schedule, huh.NewInput().
			Title(scheduleTitles[f]).
			Placeholder("HH:MM").
			Value(&a.times[i]).
			Validate(validateTime))
	}

	form := huh.NewForm(
		huh.NewGroup(schedule...).Title("Daily schedule"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Residence").
				Options(
					huh.NewOption("Day scholar", string(models.ResidenceDayScholar)),
					huh.NewOption("Hosteller", string(models.ResidenceHosteller)),
				).
				Value(&a.residence),
			huh.NewConfirm().
				Title("Track health metrics?").
				Value(&a.health),
		).Title("About you"),
		huh.NewGroup(
			huh.NewInput().
				Title("Productive activities").
				Description("Comma separated").
				Value(&a.productive),
			huh.NewInput().
				Title("Unproductive activities").
				Description("Comma separated").
				Value(&a.unproductive),
		).Title("Activities"),
		huh.NewGroup(
			huh.NewInput().Title("Semester number").Value(&a.semesterNumber).Validate(validateSemesterNumber),
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&a.startDate).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&a.endDate).Validate(validateDate),
		).Title("Current semester"),
	).WithTheme(huh.ThemeBase())
	if err := form.Run(); err != nil {
		return d, err
	}

	for {
		var arg cli.SubjectArg
		arg.CourseType = string(models.CourseTheory)
		more := false
		subjectForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Subject code").Value(&arg.Code).Validate(required),
				huh.NewInput().Title("Subject name").Value(&arg.Name).Validate(required),
				huh.NewInput().Title("Faculty initials").Value(&arg.Faculty),
				huh.NewSelect[string]().
					Title("Course type").
					Options(
						huh.NewOption("Theory", string(models.CourseTheory)),
						huh.NewOption("Theory cum practical", string(models.CourseTCP)),
						huh.NewOption("Practical", string(models.CoursePractical)),
					).
					Value(&arg.CourseType),
				huh.NewConfirm().Title("Add another subject?").Value(&more),
			).Title(fmt.Sprintf("Subject %d", len(a.subjects)+1)),
		).WithTheme(huh.ThemeBase())
		if err := subjectForm.Run(); err != nil {
			return d, err
		}
		a.subjects = append(a.subjects, arg)
		if !more {
			break
		}
	}

	actions, err := a.actions()
	if err != nil {
		return d, err
	}
	return draft.ReduceAll(d, actions...)
}

func validateSemesterNumber(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < constants.MinSemesterNumber || n > constants.MaxSemesterNumber {
		return fmt.Errorf("enter a number between %d and %d", constants.MinSemesterNumber, constants.MaxSemesterNumber)
	}
	return nil
}
