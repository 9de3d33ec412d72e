package days

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/tracker"
)

// LogCmd sets fields of one hour record. Only the flags given are changed;
// an empty value clears a field.
type LogCmd struct {
	Date       string  `short:"d" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
	Time       string  `arg:"" help:"Slot time (08:45, 9, 9:00) or label (\"3rd Hour\")."`
	Subject    *string `short:"s" help:"Subject code for college hours."`
	Unit       *int    `short:"u" help:"Unit number covered in the hour."`
	Attendance *string `short:"a" help:"Attendance (present, absent, onduty, cancelled)."`
	Activity   *string `short:"A" help:"Activity for non-college hours."`
	Level      *int    `short:"l" help:"Productivity level (1, 2, 5 or 10)."`
	Notes      *string `short:"n" help:"Free-form notes."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	slot, err := resolveSlot(s.plan(ctx), c.Time)
	if err != nil {
		return err
	}

	fields := c.fields()
	if len(fields) == 0 {
		return fmt.Errorf("nothing to log: pass at least one of --subject, --unit, --attendance, --activity, --level or --notes")
	}
	for _, f := range fields {
		if s.day, err = tracker.SetField(s.day, slot.Time, f[0], f[1]); err != nil {
			return err
		}
	}

	if err := s.save(ctx); err != nil {
		return err
	}
	rec, _ := s.day.Hour(slot.Time)
	ctx.Printf("✓ %s %s: %s\n", slot.Time, slot.Label, describe(rec, slot))
	return nil
}

// fields returns the (field, value) pairs in the order they are applied.
// Subject goes first so an explicit attendance overrides the implied one.
func (c *LogCmd) fields() [][2]string {
	var out [][2]string
	if c.Subject != nil {
		out = append(out, [2]string{tracker.FieldSubject, *c.Subject})
	}
	if c.Unit != nil {
		out = append(out, [2]string{tracker.FieldUnit, strconv.Itoa(*c.Unit)})
	}
	if c.Attendance != nil {
		out = append(out, [2]string{tracker.FieldAttendance, *c.Attendance})
	}
	if c.Activity != nil {
		out = append(out, [2]string{tracker.FieldActivity, *c.Activity})
	}
	if c.Level != nil {
		out = append(out, [2]string{tracker.FieldProductivityLevel, strconv.Itoa(*c.Level)})
	}
	if c.Notes != nil {
		out = append(out, [2]string{tracker.FieldNotes, *c.Notes})
	}
	return out
}

// TypeCmd switches a day between college and non-college. Switching clears
// the day's hour records.
type TypeCmd struct {
	Date string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
	Type string `arg:"" enum:"college,non-college" help:"Day type."`
}

func (c *TypeCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	cleared := len(s.day.Hours)
	t := models.DayType(c.Type)
	if t == s.day.DayType && s.stored {
		ctx.Printf("%s is already a %s day.\n", s.label(), t)
		return nil
	}
	s.day = tracker.ChangeDayType(s.day, t)
	if err := s.save(ctx); err != nil {
		return err
	}
	ctx.Printf("✓ %s is now a %s day\n", s.label(), t)
	if cleared > 0 && len(s.day.Hours) == 0 {
		ctx.Printf("  Cleared %d hour record(s).\n", cleared)
	}
	return nil
}

type ReflectCmd struct {
	Date string `short:"d" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
	Text string `arg:"" help:"Reflection text; an empty string clears it."`
}

func (c *ReflectCmd) Run(ctx *cli.Context) error {
	s, err := loadDay(ctx, c.Date)
	if err != nil {
		return err
	}
	s.day = tracker.SetReflection(s.day, c.Text)
	if err := s.save(ctx); err != nil {
		return err
	}
	ctx.Printf("✓ Saved reflection for %s\n", s.label())
	return nil
}
