package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/models"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if ctx.Config.UserID == "" {
		t.Fatal("expected a generated user id")
	}

	reloaded, err := config.Load(ctx.Config.Dir())
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if reloaded.UserID != ctx.Config.UserID {
		t.Errorf("persisted user id = %q, want %q", reloaded.UserID, ctx.Config.UserID)
	}

	doc, err := ctx.Store.GetUser(ctx.Config.UserID)
	if err != nil {
		t.Fatalf("profile not saved: %v", err)
	}
	if doc.WakeUpTime != "04:00" || doc.ResidenceType != models.ResidenceDayScholar {
		t.Errorf("expected onboarding defaults, got %+v", doc.ScheduleProfile)
	}
	if len(doc.Semesters) != 0 || doc.OnboardingComplete {
		t.Errorf("non-interactive init should leave onboarding open without semesters")
	}
	if len(doc.ProductiveActivities) != 0 {
		t.Errorf("blank activities should be dropped, got %q", doc.ProductiveActivities)
	}
	if !strings.Contains(out.String(), "classlog profile semester add") {
		t.Errorf("expected semester hint in output:\n%s", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	userID := ctx.Config.UserID

	out.Reset()
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if ctx.Config.UserID != userID {
		t.Errorf("user id changed on second init")
	}
	if !strings.Contains(out.String(), "Profile already exists") {
		t.Errorf("expected existing profile notice, got:\n%s", out.String())
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, dbPath, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database at: "+dbPath) {
		t.Errorf("expected delete notice, got:\n%s", out.String())
	}
	if _, err := ctx.Store.GetUser(ctx.Config.UserID); err != nil {
		t.Errorf("profile should be recreated: %v", err)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, _ := setupTestContext(t)

	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Fatalf("expected same-source error, got %v", err)
	}
}

func TestInitCmd_Source(t *testing.T) {
	srcCtx, srcPath, _ := setupTestContext(t)
	if err := (&InitCmd{}).Run(srcCtx); err != nil {
		t.Fatalf("source init failed: %v", err)
	}
	userID := srcCtx.Config.UserID

	entry := models.DailyEntry{UserID: userID, Date: testNow, DayType: models.DayNonCollege,
		Hours: []models.HourRecord{{Time: "09:00", Activity: "Reading", ProductivityLevel: 5}}}
	if err := srcCtx.Store.SaveDailyEntry(entry); err != nil {
		t.Fatal(err)
	}
	if _, err := srcCtx.Store.AddReminder(models.Reminder{UserID: userID, Name: "Lab record", Deadline: testNow}); err != nil {
		t.Fatal(err)
	}
	if err := srcCtx.Store.Close(); err != nil {
		t.Fatal(err)
	}

	dst, _, out := setupTestContext(t)
	dst.UserID = userID
	if err := (&InitCmd{Source: srcPath}).Run(dst); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	if _, err := dst.Store.GetUser(userID); err != nil {
		t.Errorf("profile not copied: %v", err)
	}
	entries, err := dst.Store.ListDailyEntries(userID)
	if err != nil || len(entries) != 1 {
		t.Errorf("expected 1 copied entry, got %d (%v)", len(entries), err)
	}
	list, err := dst.Store.ListReminders(userID)
	if err != nil || len(list) != 1 {
		t.Errorf("expected 1 copied reminder, got %d (%v)", len(list), err)
	}
	if !strings.Contains(out.String(), "Copied 1 daily entries") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestEnsureUser_UsesOverride(t *testing.T) {
	ctx := &cli.Context{UserID: "fixed"}
	id, err := ensureUser(ctx)
	if err != nil || id != "fixed" {
		t.Errorf("ensureUser() = %q, %v", id, err)
	}
}

func TestCompactActivities(t *testing.T) {
	got := compactActivities([]string{"", " Coding ", "  ", "Gym"})
	if len(got) != 2 || got[0] != "Coding" || got[1] != "Gym" {
		t.Errorf("compactActivities() = %q", got)
	}
}

func TestInitCmd_SourceMissing(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	ctx.UserID = "u1"
	err := (&InitCmd{Source: filepath.Join(t.TempDir(), "missing.db")}).Run(ctx)
	if err == nil {
		t.Fatal("expected error for missing source database")
	}
}
