// Package wellness holds the health metric commands.
package wellness

import (
	"errors"
	"fmt"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	clerrors "github.com/julianstephens/classlog/internal/errors"
	"github.com/julianstephens/classlog/internal/health"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/utils"
	"github.com/julianstephens/classlog/internal/validation"
)

var errHealthDisabled = errors.New("health metrics are disabled, run 'classlog profile set enableHealthMetrics true' to enable them")

// HealthLogCmd records one day's health metrics. Metrics not given keep
// their stored value.
type HealthLogCmd struct {
	Date     string   `short:"d" help:"Day (YYYY-MM-DD, today, yesterday or tomorrow)."`
	Weight   *float64 `short:"w" help:"Morning weight in kg."`
	Water    *int     `help:"Glasses of water."`
	Steps    *int     `help:"Steps walked."`
	Calories *int     `help:"Calories burnt."`
}

func (c *HealthLogCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	if !doc.EnableHealthMetrics {
		return errHealthDisabled
	}
	if c.Weight == nil && c.Water == nil && c.Steps == nil && c.Calories == nil {
		return fmt.Errorf("nothing to log: pass at least one of --weight, --water, --steps or --calories")
	}
	when, err := ctx.ParseDay(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetHealthMetric(userID, utils.Today(when))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return clerrors.Loading("health metrics", err)
	}
	entry.UserID = userID
	entry.Date = when
	if c.Weight != nil {
		entry.MorningWeight = *c.Weight
	}
	if c.Water != nil {
		entry.GlassesOfWater = *c.Water
	}
	if c.Steps != nil {
		entry.Steps = *c.Steps
	}
	if c.Calories != nil {
		entry.CaloriesBurnt = *c.Calories
	}
	entry.UpdatedAt = ctx.Clock()

	result := validation.New().ValidateHealth(entry)
	if err := result.Err(validation.ErrHealthInvalid); err != nil {
		return err
	}
	if err := ctx.Store.SaveHealthMetric(entry); err != nil {
		return clerrors.Saving("health metrics", err)
	}
	ctx.Printf("✓ Logged health metrics for %s: %s\n", entry.Day(), summary(entry))
	return nil
}

// HealthShowCmd lists the latest days of health metrics with their averages.
type HealthShowCmd struct {
	Limit int `short:"n" default:"7" help:"Number of days to show."`
}

func (c *HealthShowCmd) Run(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	if !doc.EnableHealthMetrics {
		return errHealthDisabled
	}
	all, err := ctx.Store.ListHealthMetrics(userID)
	if err != nil {
		return clerrors.Loading("health metrics", err)
	}

	limit := c.Limit
	if limit <= 0 {
		limit = constants.HealthHistoryLimit
	}
	history := health.Recent(all, limit)
	if len(history) == 0 {
		ctx.Println("No health metrics logged yet.")
		return nil
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Health · last %d day(s)", len(history))))
	for _, e := range history {
		ctx.Printf("  %s  %s\n", e.Day(), summary(e))
	}
	if avg, ok := health.Average(history); ok {
		ctx.Println()
		ctx.Printf("Average  %.1f kg · %d glass(es) · %d steps · %d kcal\n",
			avg.MorningWeight, avg.GlassesOfWater, avg.Steps, avg.CaloriesBurnt)
	}
	return nil
}

func summary(e models.HealthMetricEntry) string {
	return fmt.Sprintf("%.1f kg · %d glass(es) · %d steps · %d kcal",
		e.MorningWeight, e.GlassesOfWater, e.Steps, e.CaloriesBurnt)
}
