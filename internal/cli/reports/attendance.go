package reports

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/classlog/internal/attendance"
	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/semester"
)

// AttendanceCmd reports per-subject attendance for one semester.
type AttendanceCmd struct {
	Semester string `short:"S" default:"current" help:"Semester number, or 'current'."`
	Subject  string `short:"s" default:"all" help:"Subject code, or 'all'."`
	History  bool   `help:"List every counted class under its subject."`
	Export   string `short:"e" type:"path" help:"Write the report to an xlsx workbook."`
}

func (c *AttendanceCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	if len(doc.Semesters) == 0 {
		return fmt.Errorf("no semesters configured, run 'classlog profile semester add' first")
	}
	sem := semester.Resolve(c.Semester, doc.Semesters, ctx.Clock())
	if sem == nil {
		return fmt.Errorf("no semester matches %q", c.Semester)
	}

	entries, err := ctx.Store.ListDailyEntries(userID)
	if err != nil {
		return clerrors.Loading("daily entries", err)
	}
	stats := attendance.AggregateIn(*sem, entries, ctx.Location())
	list := attendance.FilterSubject(attendance.Ordered(*sem, stats), c.Subject)
	if len(list) == 0 {
		return fmt.Errorf("subject %q is not in semester %d", c.Subject, sem.SemesterNumber)
	}

	title := semesterTitle(*sem)
	if c.Export != "" {
		return exportAttendance(ctx, c.Export, title, list)
	}

	ctx.Println(cli.TitleStyle.Render("Attendance · " + title))
	for _, s := range list {
		printSubject(ctx, s)
		if c.History {
			printHistory(ctx, s)
		}
	}
	if len(list) > 1 {
		overall := attendance.Overall(list)
		ctx.Println()
		ctx.Printf("Overall  %s  (%d/%d classes)\n",
			cli.BandStyle(overall.Percentage).Render(fmt.Sprintf("%d%%", overall.Percentage)),
			overall.Attended(), overall.Total)
	}
	return nil
}

func semesterTitle(sem models.Semester) string {
	title := fmt.Sprintf("Semester %d", sem.SemesterNumber)
	if sem.StartDate != "" || sem.EndDate != "" {
		title += fmt.Sprintf(" (%s to %s)", orDash(sem.StartDate), orDash(sem.EndDate))
	}
	return title
}

func printSubject(ctx *cli.Context, s attendance.SubjectStats) {
	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("%s  %s", s.Code, s.Name)))
	if s.Total == 0 {
		ctx.Println(cli.MutedStyle.Render("  No classes logged yet."))
		return
	}
	ctx.Printf("  %s  present %d · absent %d · on duty %d · cancelled %d\n",
		cli.BandStyle(s.Percentage).Render(fmt.Sprintf("%3d%%", s.Percentage)),
		s.Present, s.Absent, s.OnDuty, s.Cancelled)
	if n := s.ClassesNeeded(); n > 0 {
		ctx.Printf("  ⚠ Attend the next %d class(es) to reach %d%%\n", n, constants.AttendanceThreshold)
	}
}

func printHistory(ctx *cli.Context, s attendance.SubjectStats) {
	for _, class := range s.Classes {
		line := fmt.Sprintf("    %s %s  %-9s", class.Date.Format(constants.DateFormat), class.Time, class.Attendance)
		if class.Unit > 0 {
			line += fmt.Sprintf(" unit %d", class.Unit)
		}
		if class.Notes != "" {
			line += "  " + class.Notes
		}
		ctx.Println(line)
	}
}

func exportAttendance(ctx *cli.Context, path, title string, list []attendance.SubjectStats) error {
	path, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := attendance.Export(f, title, list); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	ctx.Printf("✓ Exported attendance for %d subject(s) to %s\n", len(list), path)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
