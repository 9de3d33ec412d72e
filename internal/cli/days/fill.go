package days

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/slots"
	"github.com/julianstephens/classlog/internal/tracker"
)

// FillCmd walks through every slot of a day in a form.
type FillCmd struct {
	Date string `arg:"" optional:"" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
}

// slotAnswer holds the form values of one slot.
type slotAnswer struct {
	slot       models.Slot
	subject    string
	unit       string
	attendance string
	activity   string
	level      string
	notes      string
}

func (c *FillCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}

	dayType := string(s.day.DayType)
	typeForm := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Day type for "+s.label()).
			Options(
				huh.NewOption("College day", string(models.DayCollege)),
				huh.NewOption("Non-college day", string(models.DayNonCollege)),
			).
			Value(&dayType),
	)).WithTheme(huh.ThemeBase())
	if err := typeForm.Run(); err != nil {
		return err
	}
	s.day = tracker.ChangeDayType(s.day, models.DayType(dayType))

	plan := s.plan(ctx)
	advisory(ctx, plan, s.day.Date)
	answers := prefill(plan, s.day)
	reflection := s.day.DailyReflection

	var groups []*huh.Group
	for i := range answers {
		groups = append(groups, slotGroup(&answers[i], plan, s.doc))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewText().Title("Daily reflection").Value(&reflection),
	))
	if err := huh.NewForm(groups...).WithTheme(huh.ThemeBase()).Run(); err != nil {
		return err
	}

	if s.day, err = applyAnswers(s.day, answers); err != nil {
		return err
	}
	s.day = tracker.SetReflection(s.day, reflection)
	if err := s.save(ctx); err != nil {
		return err
	}
	ctx.Printf("✓ Saved %d hour record(s) for %s\n", len(s.day.ToEntry(s.userID, ctx.Clock()).Hours), s.label())
	return nil
}

// prefill returns one answer per recordable slot, seeded from the day.
func prefill(plan slots.Plan, day tracker.Day) []slotAnswer {
	var answers []slotAnswer
	for _, slot := range plan.Slots {
		if !slot.AcceptsRecord() {
			continue
		}
		a := slotAnswer{slot: slot}
		if rec, ok := day.Hour(slot.Time); ok {
			a.subject = rec.Subject
			a.attendance = string(rec.Attendance)
			a.activity = rec.Activity
			a.notes = rec.Notes
			if rec.Unit > 0 {
				a.unit = strconv.Itoa(int(rec.Unit))
			}
			if rec.ProductivityLevel > 0 {
				a.level = strconv.Itoa(rec.ProductivityLevel)
			}
		}
		answers = append(answers, a)
	}
	return answers
}

// applyAnswers writes the answers into the day. College hours take the
// subject fields, every other slot the activity fields.
func applyAnswers(day tracker.Day, answers []slotAnswer) (tracker.Day, error) {
	var err error
	for _, a := range answers {
		var fields [][2]string
		if a.slot.IsCollegeHour() {
			fields = [][2]string{
				{tracker.FieldSubject, a.subject},
				{tracker.FieldAttendance, a.attendance},
				{tracker.FieldUnit, a.unit},
			}
			if a.subject == "" {
				fields[1][1] = ""
			}
		} else {
			fields = [][2]string{
				{tracker.FieldActivity, a.activity},
				{tracker.FieldProductivityLevel, a.level},
			}
		}
		fields = append(fields, [2]string{tracker.FieldNotes, a.notes})
		for _, f := range fields {
			if day, err = tracker.SetField(day, a.slot.Time, f[0], f[1]); err != nil {
				return day, fmt.Errorf("%s: %w", a.slot.Label, err)
			}
		}
	}
	return day, nil
}

func slotGroup(a *slotAnswer, plan slots.Plan, doc models.UserDocument) *huh.Group {
	title := fmt.Sprintf("%s  %s", a.slot.Time, a.slot.Label)
	if a.slot.IsCollegeHour() {
		subjects := []huh.Option[string]{huh.NewOption("(none)", "")}
		for _, sub := range plan.Subjects() {
			subjects = append(subjects, huh.NewOption(sub.Code+"  "+sub.Name, sub.Code))
		}
		attendance := []huh.Option[string]{huh.NewOption("(unset)", "")}
		for _, st := range models.AttendanceStatuses {
			attendance = append(attendance, huh.NewOption(string(st), string(st)))
		}
		if a.attendance == "" {
			a.attendance = string(models.AttendancePresent)
		}
		return huh.NewGroup(
			huh.NewSelect[string]().Title("Subject").Options(subjects...).Value(&a.subject),
			huh.NewSelect[string]().Title("Attendance").Options(attendance...).Value(&a.attendance),
			huh.NewInput().Title("Unit").Placeholder("1-5").Value(&a.unit).Validate(validateUnit),
			huh.NewInput().Title("Notes").Value(&a.notes),
		).Title(title)
	}

	activities := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, act := range doc.ProductiveActivities {
		activities = append(activities, huh.NewOption(act+" (productive)", act))
	}
	for _, act := range doc.UnproductiveActivities {
		activities = append(activities, huh.NewOption(act+" (unproductive)", act))
	}
	levels := []huh.Option[string]{huh.NewOption("(unset)", "")}
	for _, l := range constants.ProductivityLevels {
		levels = append(levels, huh.NewOption(strconv.Itoa(l), strconv.Itoa(l)))
	}
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Activity").Options(activities...).Value(&a.activity),
		huh.NewSelect[string]().Title("Productivity").Options(levels...).Value(&a.level),
		huh.NewInput().Title("Notes").Value(&a.notes),
	).Title(title)
}

func validateUnit(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter a unit number")
	}
	return nil
}
