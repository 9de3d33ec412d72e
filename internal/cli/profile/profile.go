package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render("Profile " + userID))
	ctx.Println()
	ctx.Println(cli.HeaderStyle.Render("Schedule"))
	p := doc.ScheduleProfile
	rows := [][3]string{
		{"Wake up", p.WakeUpTime, ""},
		{"Preparation", p.PrepTimeStart, p.PrepTimeEnd},
		{"Bus to college", p.BusToCollegeStart, p.BusToCollegeEnd},
		{"College", p.CollegeStart, p.CollegeEnd},
		{"Return bus", p.BusReturnStart, p.BusReturnEnd},
		{"Refresh", p.RefreshTimeStart, p.RefreshTimeEnd},
		{"Active evening", p.ActiveEveningStart, p.ActiveEveningEnd},
		{"Sleep", p.UsualSleepTime, ""},
	}
	for _, r := range rows {
		span := orDash(r[1])
		if r[2] != "" {
			span += " - " + r[2]
		}
		ctx.Printf("  %-16s %s\n", r[0], span)
	}
	ctx.Println()
	ctx.Printf("  %-16s %s\n", "Residence", orDash(string(p.ResidenceType)))
	ctx.Printf("  %-16s %v\n", "Health metrics", p.EnableHealthMetrics)
	ctx.Printf("  %-16s %s\n", "Productive", orDash(strings.Join(p.ProductiveActivities, ", ")))
	ctx.Printf("  %-16s %s\n", "Unproductive", orDash(strings.Join(p.UnproductiveActivities, ", ")))
	ctx.Printf("  %-16s %v\n", "Onboarded", doc.OnboardingComplete)

	ctx.Println()
	printSemesters(ctx, doc.Semesters)
	return nil
}

// ProfileSetCmd edits one schedule field, the residence type or the health
// metrics flag.
type ProfileSetCmd struct {
	Field string `arg:"" help:"Field name (e.g. wakeUpTime, collegeStart, residenceType, enableHealthMetrics)."`
	Value string `arg:"" help:"New value. Times use HH:MM; an empty string clears a time."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}

	var action draft.Action
	switch c.Field {
	case "residenceType":
		action = draft.SetResidence(models.ResidenceType(c.Value))
	case "enableHealthMetrics":
		action = draft.Action{Kind: draft.ActSetHealthMetrics, Value: c.Value}
	default:
		action = draft.SetSchedule(c.Field, c.Value)
	}

	if _, err := ctx.Apply(userID, doc, action); err != nil {
		return err
	}
	ctx.Printf("✓ Set %s to %q\n", c.Field, c.Value)
	return nil
}

// ProfileExportCmd writes the profile as YAML.
type ProfileExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ProfileExportCmd) Run(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if c.Output == "" {
		_, err := ctx.Writer().Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	ctx.Printf("✓ Profile exported to %s\n", c.Output)
	return nil
}

// ProfileImportCmd replaces the profile with a YAML document. The document
// goes through the same validation as any other save.
type ProfileImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file produced by 'profile export'."`
}

func (c *ProfileImportCmd) Run(ctx *cli.Context) error {
	userID, _, err := ctx.LoadUser()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	var doc models.UserDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	if err := ctx.SaveUser(userID, doc); err != nil {
		return err
	}
	ctx.Printf("✓ Imported profile with %d semester(s)\n", len(doc.Semesters))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
