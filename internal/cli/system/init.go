package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
)

type InitCmd struct {
	Force       bool   `help:"Force reset by deleting existing database before initialization."`
	Interactive bool   `short:"i" help:"Walk through the onboarding forms to set up the schedule and first semester."`
	Source      string `help:"Database path or connection string to copy the active user's documents from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeDatabase(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized classlog storage at: %s\n", ctx.Store.GetConfigPath())

	userID, err := ensureUser(ctx)
	if err != nil {
		return err
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyUserData(ctx, c.Source, userID); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
		return nil
	}

	if _, err := ctx.Store.GetUser(userID); err == nil && !c.Force {
		ctx.Printf("Profile already exists for user %s\n", userID)
		return nil
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	var doc models.UserDocument
	if c.Interactive {
		d, err := runOnboarding(draft.Onboarding())
		if err != nil {
			return err
		}
		doc = d.Doc
		now := ctx.Clock()
		doc.OnboardingComplete = true
		doc.CompletedAt = &now
	} else {
		// A blank roster semester cannot be saved, so the non-interactive
		// profile starts without one.
		doc = draft.Onboarding().Doc
		doc.Semesters = nil
	}
	doc.ProductiveActivities = compactActivities(doc.ProductiveActivities)
	doc.UnproductiveActivities = compactActivities(doc.UnproductiveActivities)

	if err := ctx.SaveUser(userID, doc); err != nil {
		return err
	}
	ctx.Printf("Created profile for user %s\n", userID)
	if len(doc.Semesters) == 0 {
		ctx.Println("Add a semester with 'classlog profile semester add' to start tracking classes.")
	}
	return nil
}

func (c *InitCmd) removeDatabase(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	st, err := os.Stat(dbPath)
	switch {
	case err == nil && !st.IsDir():
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// ensureUser returns the configured user id, generating and persisting one
// on first run.
func ensureUser(ctx *cli.Context) (string, error) {
	userID, err := ctx.User()
	if err == nil {
		return userID, nil
	}
	if !errors.Is(err, cli.ErrNoUser) {
		return "", err
	}

	userID = uuid.NewString()
	if ctx.Config != nil {
		if err := ctx.Config.SetUserID(userID); err != nil {
			return "", fmt.Errorf("failed to save user id: %w", err)
		}
	}
	ctx.UserID = userID
	ctx.Printf("Generated user id: %s\n", userID)
	return userID, nil
}

func copyUserData(ctx *cli.Context, source, userID string) error {
	src, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying profile...")
	doc, err := src.GetUser(userID)
	switch {
	case err == nil:
		if err := ctx.Store.SaveUser(userID, doc); err != nil {
			return fmt.Errorf("failed to save profile to destination: %w", err)
		}
	case errors.Is(err, storage.ErrNotFound):
		ctx.Println("    No profile in source")
	default:
		return fmt.Errorf("failed to get profile from source: %w", err)
	}

	ctx.Println("  Copying daily entries...")
	entries, err := src.ListDailyEntries(userID)
	if err != nil {
		return fmt.Errorf("failed to get daily entries from source: %w", err)
	}
	for _, e := range entries {
		if err := ctx.Store.SaveDailyEntry(e); err != nil {
			return fmt.Errorf("failed to save entry for %s: %w", e.Day(), err)
		}
	}
	ctx.Printf("    Copied %d daily entries\n", len(entries))

	ctx.Println("  Copying health metrics...")
	metrics, err := src.ListHealthMetrics(userID)
	if err != nil {
		return fmt.Errorf("failed to get health metrics from source: %w", err)
	}
	for _, h := range metrics {
		if err := ctx.Store.SaveHealthMetric(h); err != nil {
			return fmt.Errorf("failed to save health metric for %s: %w", h.Day(), err)
		}
	}
	ctx.Printf("    Copied %d health metrics\n", len(metrics))

	ctx.Println("  Copying reminders...")
	list, err := src.ListReminders(userID)
	if err != nil {
		return fmt.Errorf("failed to get reminders from source: %w", err)
	}
	for _, r := range list {
		if _, err := ctx.Store.AddReminder(r); err != nil {
			return fmt.Errorf("failed to add reminder %s: %w", r.ID, err)
		}
	}
	ctx.Printf("    Copied %d reminders\n", len(list))

	return nil
}

func compactActivities(list []string) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
