package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/classlog/internal/attendance"
	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/productivity"
	"github.com/julianstephens/classlog/internal/reminders"
	"github.com/julianstephens/classlog/internal/semester"
)

// DashboardCmd prints the home screen: productivity windows, current
// attendance, due reminders and the latest entries.
type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListDailyEntries(userID)
	if err != nil {
		return clerrors.Loading("daily entries", err)
	}
	list, err := ctx.Store.ListReminders(userID)
	if err != nil {
		return clerrors.Loading("reminders", err)
	}

	now := ctx.Clock()
	dash := productivity.Summarize(entries, now)

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("%s · %s", constants.AppName, now.Format("Mon, 02 Jan 2006"))))
	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Productivity"))
	printWindow(ctx, productivity.WindowToday, dash.Today)
	printWindow(ctx, productivity.WindowWeek, dash.Week)
	printWindow(ctx, productivity.WindowMonth, dash.Month)

	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Attendance"))
	if sem := semester.ActiveOn(doc.Semesters, now); sem != nil {
		stats := attendance.Ordered(*sem, attendance.AggregateIn(*sem, entries, ctx.Location()))
		overall := attendance.Overall(stats)
		ctx.Printf("  Semester %d  %s  (%d/%d classes)\n", sem.SemesterNumber,
			cli.BandStyle(overall.Percentage).Render(fmt.Sprintf("%d%%", overall.Percentage)),
			overall.Attended(), overall.Total)
		var low []string
		for _, s := range stats {
			if s.Total > 0 && s.BelowThreshold() {
				low = append(low, fmt.Sprintf("%s %d%%", s.Code, s.Percentage))
			}
		}
		if len(low) > 0 {
			ctx.Printf("  ⚠ Below %d%%: %s\n", constants.AttendanceThreshold, strings.Join(low, ", "))
		}
	} else {
		ctx.Println(cli.MutedStyle.Render("  No active semester."))
	}

	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Reminders"))
	counts := reminders.Count(list)
	due := reminders.Due(list, now)
	ctx.Printf("  %d active · %d completed · %d due\n", counts.Active, counts.Completed, len(due))
	for _, r := range due {
		ctx.Printf("  • %s (%s)\n", r.Name, cli.DeadlineText(r.Deadline, now))
	}

	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Recent activity"))
	if len(dash.Recent) == 0 {
		ctx.Println(cli.MutedStyle.Render("  Nothing logged yet."))
	}
	for _, a := range dash.Recent {
		line := fmt.Sprintf("  %s  %2d hour(s)", a.Date.Format(constants.DateFormat), a.HoursLogged)
		if a.Reflection != "" {
			line += "  " + a.Reflection
		}
		ctx.Println(line)
	}
	return nil
}

// ProductivityCmd prints the productivity index of one window.
type ProductivityCmd struct {
	Window string `short:"w" default:"today" help:"Window: today, week or month."`
}

func (c *ProductivityCmd) Run(ctx *cli.Context) error {
	w, err := productivity.ParseWindow(c.Window)
	if err != nil {
		return err
	}
	userID, _, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListDailyEntries(userID)
	if err != nil {
		return clerrors.Loading("daily entries", err)
	}

	now := ctx.Clock()
	start, end := w.Bounds(now)
	result := productivity.AggregateWindow(entries, w, now)
	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Productivity · %s to %s",
		start.Format(constants.DateFormat), end.Format(constants.DateFormat))))
	printWindow(ctx, w, result)
	return nil
}

func printWindow(ctx *cli.Context, w productivity.Window, r productivity.Result) {
	if r.HoursLogged == 0 {
		ctx.Printf("  %-6s %s\n", w, cli.MutedStyle.Render("no hours logged"))
		return
	}
	ctx.Printf("  %-6s %s  over %d hour(s)\n", w,
		cli.BandStyle(r.Index).Render(fmt.Sprintf("%3d%%", r.Index)), r.HoursLogged)
}
