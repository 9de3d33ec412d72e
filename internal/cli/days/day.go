package days

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/semester"
	"github.com/julianstephens/classlog/internal/slots"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/tracker"
	"github.com/julianstephens/classlog/internal/utils"
	"github.com/julianstephens/classlog/internal/validation"
)

// dayState is a day being edited together with the profile it is tracked
// against.
type dayState struct {
	userID string
	doc    models.UserDocument
	day    tracker.Day
	stored bool
	// saved holds the records as last stored, keyed by time.
	saved map[string]models.HourRecord
}

func loadDay(ctx *cli.Context, date string) (*dayState, error) {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return nil, err
	}
	when, err := ctx.ParseDay(date)
	if err != nil {
		return nil, err
	}

	s := &dayState{userID: userID, doc: doc}
	entry, err := ctx.Store.GetDailyEntry(userID, utils.Today(when))
	switch {
	case err == nil:
		s.day = tracker.FromEntry(entry)
		s.stored = true
		s.saved = byTime(entry.Hours)
	case errors.Is(err, storage.ErrNotFound):
		s.day = tracker.NewDay(when)
	default:
		return nil, clerrors.Loading("daily entry", err)
	}
	return s, nil
}

func (s *dayState) plan(ctx *cli.Context) slots.Plan {
	active := semester.ActiveOn(s.doc.Semesters, s.day.Date)
	return ctx.Generator().Generate(s.day.DayType, s.doc.ScheduleProfile, active)
}

// save validates the day against its slots and stores it whole. Empty
// records are dropped before validation. Records identical to the stored
// ones are kept as they are, even when their subject or slot no longer
// exists in the profile.
func (s *dayState) save(ctx *cli.Context) error {
	plan := s.plan(ctx)
	entry := s.day.ToEntry(s.userID, ctx.Clock())
	result := validation.New().ValidateDay(plan.Slots, plan.Semester, s.changed(entry.Hours))
	if err := result.Err(validation.ErrDayInvalid); err != nil {
		return err
	}
	if err := ctx.Store.SaveDailyEntry(entry); err != nil {
		return clerrors.Saving("daily entry", err)
	}
	s.stored = true
	s.saved = byTime(entry.Hours)
	return nil
}

// changed returns the records that differ from the stored day.
func (s *dayState) changed(hours []models.HourRecord) []models.HourRecord {
	out := make([]models.HourRecord, 0, len(hours))
	for _, h := range hours {
		if prev, ok := s.saved[h.Time]; ok && prev == h {
			continue
		}
		out = append(out, h)
	}
	return out
}

func byTime(hours []models.HourRecord) map[string]models.HourRecord {
	m := make(map[string]models.HourRecord, len(hours))
	for _, h := range hours {
		m[h.Time] = h
	}
	return m
}

func (s *dayState) label() string {
	return s.day.Date.Format("Mon, 02 Jan 2006")
}

// resolveSlot finds the slot addressed by an exact time, an H or H:MM time,
// or a slot label such as "3rd hour".
func resolveSlot(plan slots.Plan, ref string) (models.Slot, error) {
	ref = strings.TrimSpace(ref)
	if s, ok := plan.Slot(ref); ok {
		return s, nil
	}
	if t, err := utils.ParseTime(ref); err == nil {
		if s, ok := plan.Slot(t.Format(constants.TimeFormat)); ok {
			return s, nil
		}
	} else if h, ok := utils.ParseHour(ref); ok && !strings.Contains(ref, ":") {
		if s, ok := plan.Slot(utils.HourTime(h)); ok {
			return s, nil
		}
	}
	for _, s := range plan.Slots {
		if strings.EqualFold(s.Label, ref) {
			return s, nil
		}
	}
	return models.Slot{}, fmt.Errorf("no slot at %q on a %s day", ref, plan.DayType)
}

func advisory(ctx *cli.Context, plan slots.Plan, day time.Time) {
	if plan.NeedsSemester() {
		ctx.Println(cli.MutedStyle.Render(fmt.Sprintf(
			"No active semester for %s; college hours collect no subject.", utils.Today(day))))
	}
}

func describe(rec models.HourRecord, slot models.Slot) string {
	var parts []string
	if slot.IsCollegeHour() {
		if rec.Subject != "" {
			parts = append(parts, rec.Subject)
		}
		if rec.Unit > 0 {
			parts = append(parts, fmt.Sprintf("unit %d", rec.Unit))
		}
		if rec.Attendance != "" {
			parts = append(parts, string(rec.Attendance))
		}
	} else {
		if rec.Activity != "" {
			parts = append(parts, rec.Activity)
		}
		if rec.ProductivityLevel > 0 {
			parts = append(parts, fmt.Sprintf("level %d", rec.ProductivityLevel))
		}
	}
	if rec.Notes != "" {
		parts = append(parts, fmt.Sprintf("%q", rec.Notes))
	}
	return strings.Join(parts, " · ")
}

// SlotsCmd lists the trackable slots of a day with what is logged in them.
type SlotsCmd struct {
	Date string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
	Type string `short:"t" enum:",college,non-college" default:"" help:"Preview the slots of another day type."`
}

func (c *SlotsCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	if c.Type != "" {
		s.day = tracker.ChangeDayType(s.day, models.DayType(c.Type))
	}
	return printDay(ctx, s)
}

// ShowCmd prints a stored day.
type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	if !s.stored {
		ctx.Printf("Nothing logged for %s.\n", s.label())
		return nil
	}
	return printDay(ctx, s)
}

func printDay(ctx *cli.Context, s *dayState) error {
	plan := s.plan(ctx)
	title := fmt.Sprintf("%s  (%s day)", s.label(), plan.DayType)
	if plan.Semester != nil {
		title += fmt.Sprintf("  Semester %d", plan.Semester.SemesterNumber)
	}
	ctx.Println(cli.TitleStyle.Render(title))
	advisory(ctx, plan, s.day.Date)

	for _, slot := range plan.Slots {
		line := fmt.Sprintf("  %s  %-16s", slot.Time, slot.Label)
		if !slot.AcceptsRecord() {
			ctx.Println(cli.MutedStyle.Render(line))
			continue
		}
		if rec, ok := s.day.Hour(slot.Time); ok {
			line += " " + describe(rec, slot)
		}
		ctx.Println(line)
	}

	if s.day.DailyReflection != "" {
		ctx.Println()
		ctx.Println(cli.HeaderStyle.Render("Reflection"))
		ctx.Println(s.day.DailyReflection)
	}
	return nil
}
