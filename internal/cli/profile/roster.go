package profile

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/semester"
)

type SemesterAddCmd struct {
	Number   int      `help:"Semester number (1-8). Defaults to the next free number."`
	Start    string   `required:"" help:"First day of the semester (YYYY-MM-DD)."`
	End      string   `required:"" help:"Last day of the semester (YYYY-MM-DD)."`
	Subjects []string `name:"subject" short:"s" required:"" help:"Subject as CODE:Name[:FACULTY[:theory|tcp|practical]]. Repeatable."`
}

func (c *SemesterAddCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}

	parsed := make([]cli.SubjectArg, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		arg, err := cli.ParseSubjectArg(s)
		if err != nil {
			return err
		}
		parsed = append(parsed, arg)
	}

	idx := len(doc.Semesters)
	actions := []draft.Action{draft.AddSemester()}
	actions = append(actions, cli.FillSemester(idx, c.Number, c.Start, c.End, parsed)...)

	d, err := draft.ReduceAll(draft.New(doc), actions...)
	if err != nil {
		return err
	}
	next := d.Doc
	if !next.OnboardingComplete {
		now := ctx.Clock()
		next.OnboardingComplete = true
		next.CompletedAt = &now
	}
	if err := ctx.SaveUser(userID, next); err != nil {
		return err
	}

	sem := next.Semesters[idx]
	ctx.Printf("✓ Added semester %d (%s to %s) with %d subject(s)\n",
		sem.SemesterNumber, sem.StartDate, sem.EndDate, len(sem.Subjects))
	return nil
}

type SemesterRemoveCmd struct {
	Number int `arg:"" help:"Semester number."`
}

func (c *SemesterRemoveCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	idx, err := cli.SemesterIndex(doc, c.Number)
	if err != nil {
		return err
	}
	if _, err := ctx.Apply(userID, doc, draft.RemoveSemester(idx)); err != nil {
		return err
	}
	ctx.Printf("✓ Removed semester %d\n", c.Number)
	return nil
}

type SemesterSetCmd struct {
	Number int    `arg:"" help:"Semester number."`
	Field  string `arg:"" enum:"semesterNumber,startDate,endDate" help:"Field to change."`
	Value  string `arg:"" help:"New value."`
}

func (c *SemesterSetCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	idx, err := cli.SemesterIndex(doc, c.Number)
	if err != nil {
		return err
	}
	if _, err := ctx.Apply(userID, doc, draft.SetSemester(idx, c.Field, c.Value)); err != nil {
		return err
	}
	ctx.Printf("✓ Set %s of semester %d to %s\n", c.Field, c.Number, c.Value)
	return nil
}

type SemesterListCmd struct{}

func (c *SemesterListCmd) Run(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	printSemesters(ctx, doc.Semesters)
	return nil
}

func printSemesters(ctx *cli.Context, semesters []models.Semester) {
	if len(semesters) == 0 {
		ctx.Println(cli.MutedStyle.Render("No semesters configured."))
		return
	}
	active := semester.ActiveOn(semesters, ctx.Clock())
	for i := range semesters {
		sem := semesters[i]
		title := fmt.Sprintf("Semester %d  %s to %s", sem.SemesterNumber, orDash(sem.StartDate), orDash(sem.EndDate))
		if active == &semesters[i] {
			title += "  (current)"
		}
		ctx.Println(cli.HeaderStyle.Render(title))
		for _, sub := range sem.Subjects {
			ctx.Printf("  %-10s %-32s %-6s %s\n", sub.Code, sub.Name, orDash(sub.FacultyInitials), sub.CourseType)
		}
	}
}

type SubjectAddCmd struct {
	Semester int    `arg:"" help:"Semester number."`
	Subject  string `arg:"" help:"Subject as CODE:Name[:FACULTY[:theory|tcp|practical]]."`
}

func (c *SubjectAddCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	arg, err := cli.ParseSubjectArg(c.Subject)
	if err != nil {
		return err
	}
	idx, err := cli.SemesterIndex(doc, c.Semester)
	if err != nil {
		return err
	}

	sub := len(doc.Semesters[idx].Subjects)
	actions := append([]draft.Action{draft.AddSubject(idx)}, cli.SubjectActions(idx, sub, arg)...)
	if _, err := ctx.Apply(userID, doc, actions...); err != nil {
		return err
	}
	ctx.Printf("✓ Added %s to semester %d\n", arg.Code, c.Semester)
	return nil
}

type SubjectRemoveCmd struct {
	Semester int    `arg:"" help:"Semester number."`
	Code     string `arg:"" help:"Subject code."`
}

func (c *SubjectRemoveCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	semIdx, subIdx, err := locateSubject(doc, c.Semester, c.Code)
	if err != nil {
		return err
	}
	if len(doc.Semesters[semIdx].Subjects) == 1 {
		return fmt.Errorf("cannot remove the last subject of semester %d", c.Semester)
	}
	if _, err := ctx.Apply(userID, doc, draft.RemoveSubject(semIdx, subIdx)); err != nil {
		return err
	}
	ctx.Printf("✓ Removed %s from semester %d\n", c.Code, c.Semester)
	return nil
}

type SubjectSetCmd struct {
	Semester int    `arg:"" help:"Semester number."`
	Code     string `arg:"" help:"Subject code."`
	Field    string `arg:"" enum:"code,name,facultyInitials,courseType" help:"Field to change."`
	Value    string `arg:"" help:"New value."`
}

func (c *SubjectSetCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	semIdx, subIdx, err := locateSubject(doc, c.Semester, c.Code)
	if err != nil {
		return err
	}
	if _, err := ctx.Apply(userID, doc, draft.SetSubject(semIdx, subIdx, c.Field, c.Value)); err != nil {
		return err
	}
	ctx.Printf("✓ Set %s of %s to %q\n", c.Field, c.Code, c.Value)
	return nil
}

type UnitSetCmd struct {
	Semester int    `arg:"" help:"Semester number."`
	Code     string `arg:"" help:"Subject code."`
	Unit     int    `arg:"" help:"Unit number (1-based)."`
	Name     string `arg:"" help:"Unit name."`
}

func (c *UnitSetCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	semIdx, subIdx, err := locateSubject(doc, c.Semester, c.Code)
	if err != nil {
		return err
	}
	if _, err := ctx.Apply(userID, doc, draft.SetUnitName(semIdx, subIdx, c.Unit-1, c.Name)); err != nil {
		return err
	}
	ctx.Printf("✓ Named unit %d of %s %q\n", c.Unit, c.Code, c.Name)
	return nil
}

type UnitListCmd struct {
	Semester int    `arg:"" help:"Semester number."`
	Code     string `arg:"" help:"Subject code."`
}

func (c *UnitListCmd) Run(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	semIdx, subIdx, err := locateSubject(doc, c.Semester, c.Code)
	if err != nil {
		return err
	}
	sub := doc.Semesters[semIdx].Subjects[subIdx]
	ctx.Println(cli.HeaderStyle.Render(sub.Code + " " + sub.Name))
	if !sub.HasUnits() {
		ctx.Println(cli.MutedStyle.Render("  Practical courses do not track units."))
	}
	for _, u := range sub.Units {
		ctx.Printf("  %s. %s\n", strconv.Itoa(u.Number), orDash(u.Name))
	}
	return nil
}

func locateSubject(doc models.UserDocument, number int, code string) (int, int, error) {
	semIdx, err := cli.SemesterIndex(doc, number)
	if err != nil {
		return 0, 0, err
	}
	subIdx, err := cli.SubjectIndex(doc.Semesters[semIdx], code)
	if err != nil {
		return 0, 0, err
	}
	return semIdx, subIdx, nil
}
