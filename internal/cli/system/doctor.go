package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/classlog/internal/backup"
	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/migration"
	"github.com/julianstephens/classlog/internal/semester"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/tracker"
	"github.com/julianstephens/classlog/internal/utils"
	"github.com/julianstephens/classlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Profile", needsDB: true, run: checkProfile},
	{name: "Active semester", needsDB: true, warnOnly: true, run: checkActiveSemester},
	{name: "Day entries", needsDB: true, warnOnly: true, run: checkDayEntries},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	docs, ok := ctx.Backend()
	if !ok {
		return nil
	}
	if _, err := docs.GetDocument(storage.CollectionUsers, "doctor-probe"); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaStatus(ctx *cli.Context) (migration.Status, bool, error) {
	schema, ok := ctx.Schema()
	if !ok {
		return migration.Status{}, false, nil
	}
	st, err := schema.SchemaStatus()
	if err != nil {
		return st, true, fmt.Errorf("failed to get schema version: %w", err)
	}
	return st, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	st, ok, err := schemaStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("%w: version %d, supported %d", migration.ErrSchemaTooNew, st.Current, st.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	st, ok, err := schemaStatus(ctx)
	if !ok || err != nil {
		return err
	}
	if st.Pending() > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'classlog migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if st, err := os.Stat(path); err != nil || st.IsDir() {
		// only file databases are backed up
		return nil
	}
	backups, err := backup.NewManager(path).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'classlog backup create'")
	}
	return nil
}

func checkProfile(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	v := validation.New()
	profile := v.ValidateProfile(doc)
	if err := profile.Err(validation.ErrProfileInvalid); err != nil {
		return err
	}
	roster := v.ValidateRoster(doc.Semesters)
	return roster.Err(validation.ErrRosterInvalid)
}

func checkActiveSemester(ctx *cli.Context) error {
	_, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	today := ctx.Clock()
	if semester.ActiveOn(doc.Semesters, today) == nil {
		return fmt.Errorf("no semester covers %s; college hours collect no subject", utils.Today(today))
	}
	return nil
}

// checkDayEntries replays every stored day against the slots its profile
// generates today and reports the days that no longer fit.
func checkDayEntries(ctx *cli.Context) error {
	userID, doc, err := ctx.LoadUser()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListDailyEntries(userID)
	if err != nil {
		return fmt.Errorf("failed to list daily entries: %w", err)
	}

	v := validation.New()
	var bad []string
	for _, e := range entries {
		day := tracker.FromEntry(e)
		active := semester.ActiveOn(doc.Semesters, day.Date)
		plan := ctx.Generator().Generate(day.DayType, doc.ScheduleProfile, active)
		result := v.ValidateDay(plan.Slots, active, day.Hours)
		if result.HasConflicts() {
			bad = append(bad, e.Day())
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d of %d days have records outside the current slots: %v", len(bad), len(entries), bad)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && ctx.Config.Timezone != "" {
		if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", ctx.Config.Timezone, err)
		}
	}
	return nil
}
