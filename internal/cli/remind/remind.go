// Package remind holds the deadline reminder commands.
package remind

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/notifier"
	"github.com/julianstephens/classlog/internal/reminders"
)

const deadlineTimeFormat = constants.DateFormat + " " + constants.TimeFormat

type reminderNotifier interface {
	NotifyReminders(list []models.Reminder, now time.Time) (int, error)
}

var newNotifier = func() reminderNotifier { return notifier.New() }

// AddCmd creates a reminder.
type AddCmd struct {
	Name        string  `arg:"" help:"What is due."`
	Deadline    string  `short:"d" required:"" help:"Deadline as YYYY-MM-DD (end of day) or 'YYYY-MM-DD HH:MM'."`
	Period      int     `short:"p" default:"1" help:"Days before the deadline to start alerting."`
	Duration    float64 `help:"Expected effort in hours."`
	Description string  `short:"m" help:"Longer description."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.User()
	if err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("reminder name cannot be empty")
	}
	if c.Period < 0 || c.Duration < 0 {
		return fmt.Errorf("period and duration cannot be negative")
	}
	deadline, err := parseDeadline(c.Deadline, ctx.Location())
	if err != nil {
		return err
	}

	r, err := ctx.Store.AddReminder(models.Reminder{
		UserID:         userID,
		Name:           name,
		Description:    c.Description,
		Duration:       c.Duration,
		Deadline:       deadline,
		ReminderPeriod: c.Period,
		CreatedAt:      ctx.Clock(),
	})
	if err != nil {
		return clerrors.Saving("reminder", err)
	}
	ctx.Printf("✓ Added reminder %s (%s) due %s\n", r.Name, shortID(r.ID), cli.DeadlineText(r.Deadline, ctx.Clock()))
	return nil
}

// parseDeadline reads a date, meaning the end of that day, or a date and time.
func parseDeadline(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(deadlineTimeFormat, s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid deadline %q (expected %s or '%s')", s, constants.DateFormat, deadlineTimeFormat)
	}
	return t.Add(24*time.Hour - time.Minute), nil
}

// ListCmd lists reminders by deadline.
type ListCmd struct {
	Filter string `short:"f" default:"active" help:"Which reminders to list: all, active or completed."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	filter, err := reminders.ParseFilter(c.Filter)
	if err != nil {
		return err
	}
	_, all, err := loadReminders(ctx)
	if err != nil {
		return err
	}

	counts := reminders.Count(all)
	list := filter.Apply(all)
	reminders.SortByDeadline(list)

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Reminders · %d active · %d completed", counts.Active, counts.Completed)))
	if len(list) == 0 {
		ctx.Printf("No %s reminders.\n", filter)
		return nil
	}
	now := ctx.Clock()
	for _, r := range list {
		ctx.Printf("%s %s  %s  %s\n", marker(r, now), shortID(r.ID), r.Name,
			cli.MutedStyle.Render(cli.DeadlineText(r.Deadline, now)))
		if r.Description != "" {
			ctx.Printf("    %s\n", r.Description)
		}
	}
	return nil
}

func marker(r models.Reminder, now time.Time) string {
	if r.Completed {
		return "✓"
	}
	switch reminders.StatusOf(r.Deadline, now) {
	case reminders.StatusOverdue:
		return "❌"
	case reminders.StatusToday:
		return "⚠"
	}
	if reminders.IsDue(r, now) {
		return "•"
	}
	return " "
}

// DoneCmd toggles a reminder between completed and open.
type DoneCmd struct {
	ID string `arg:"" help:"Reminder id or unique id prefix."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	r, err := findReminder(ctx, c.ID)
	if err != nil {
		return err
	}
	r = reminders.Toggle(r, ctx.Clock())
	if err := ctx.Store.UpdateReminder(r); err != nil {
		return clerrors.Saving("reminder", err)
	}
	if r.Completed {
		ctx.Printf("✓ Completed %s\n", r.Name)
	} else {
		ctx.Printf("Reopened %s\n", r.Name)
	}
	return nil
}

// DeleteCmd removes a reminder.
type DeleteCmd struct {
	ID string `arg:"" help:"Reminder id or unique id prefix."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	r, err := findReminder(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteReminder(r.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	ctx.Printf("✓ Deleted %s\n", r.Name)
	return nil
}

// ExportCmd writes the open reminders as an iCalendar feed.
type ExportCmd struct {
	Output string `short:"o" type:"path" help:"Output .ics file (stdout when omitted)."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	_, list, err := loadReminders(ctx)
	if err != nil {
		return err
	}
	reminders.SortByDeadline(list)

	var w io.Writer = ctx.Writer()
	if c.Output != "" {
		path, err := config.ExpandPath(c.Output)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create calendar file: %w", err)
		}
		defer f.Close()
		w = f
		c.Output = path
	}
	if err := reminders.WriteICS(w, list, ctx.Clock()); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.Printf("✓ Exported %d open reminder(s) to %s\n", reminders.Count(list).Active, c.Output)
	}
	return nil
}

// NotifyCmd sends a desktop notification for every due reminder.
type NotifyCmd struct {
	DryRun bool `help:"Print the notifications instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !c.DryRun && ctx.Config != nil && !ctx.Config.NotificationsEnabled {
		ctx.Println("⊘ Notifications are disabled (notifications_enabled = false)")
		return nil
	}
	_, list, err := loadReminders(ctx)
	if err != nil {
		return err
	}

	now := ctx.Clock()
	due := reminders.Due(list, now)
	if len(due) == 0 {
		ctx.Println("No reminders are due.")
		return nil
	}
	if c.DryRun {
		for _, r := range due {
			ctx.Println(notifier.ReminderText(r, now))
		}
		return nil
	}

	sent, err := newNotifier().NotifyReminders(due, now)
	if err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			logger.Warn("Tray application is not running", "error", err)
		}
		return fmt.Errorf("sent %d of %d notification(s): %w", sent, len(due), err)
	}
	ctx.Printf("✓ Sent %d notification(s)\n", sent)
	return nil
}

func loadReminders(ctx *cli.Context) (string, []models.Reminder, error) {
	if err := ctx.Store.Load(); err != nil {
		return "", nil, err
	}
	userID, err := ctx.User()
	if err != nil {
		return "", nil, err
	}
	list, err := ctx.Store.ListReminders(userID)
	if err != nil {
		return "", nil, clerrors.Loading("reminders", err)
	}
	return userID, list, nil
}

// findReminder resolves an id or a prefix that matches exactly one of the
// user's reminders.
func findReminder(ctx *cli.Context, ref string) (models.Reminder, error) {
	_, list, err := loadReminders(ctx)
	if err != nil {
		return models.Reminder{}, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Reminder{}, fmt.Errorf("reminder id cannot be empty")
	}
	var matches []models.Reminder
	for _, r := range list {
		if r.ID == ref {
			return r, nil
		}
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return models.Reminder{}, fmt.Errorf("no reminder with id %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Reminder{}, fmt.Errorf("id %q matches %d reminders, use more characters", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
