package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/classlog/internal/models"
)

func initTestContext(t *testing.T) (*cliContext, string) {
	t.Helper()
	ctx, dbPath, out := setupTestContext(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()
	return &cliContext{ctx, out}, dbPath
}

func TestDoctorCmd_HealthyDB(t *testing.T) {
	c, _ := initTestContext(t)

	if err := (&DoctorCmd{}).Run(c.ctx); err != nil {
		t.Errorf("doctor command failed on healthy database: %v\n%s", err, c.out.String())
	}
	// no semester covers today, which is only a warning
	if !strings.Contains(c.out.String(), "⚠ Active semester: WARNING") {
		t.Errorf("expected active semester warning:\n%s", c.out.String())
	}
	if !strings.Contains(c.out.String(), "✓ Backups present: OK") {
		t.Errorf("init should have left an automatic backup:\n%s", c.out.String())
	}
}

func TestDoctorCmd_Uninitialised(t *testing.T) {
	ctx, _, out := setupTestContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("doctor should fail without a database")
	}
	if !strings.Contains(out.String(), "⊘ Profile: SKIPPED") {
		t.Errorf("expected dependent checks to be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	c, _ := initTestContext(t)

	db := sqliteBackend(t, c.ctx).GetDB()
	if db == nil {
		t.Fatal("database connection is nil")
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to delete schema version: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (999)"); err != nil {
		t.Fatalf("failed to insert corrupted schema version: %v", err)
	}

	if err := (&DoctorCmd{}).Run(c.ctx); err == nil {
		t.Error("doctor command should fail with corrupted schema")
	}
	if !strings.Contains(c.out.String(), "❌ Schema version: FAIL") {
		t.Errorf("expected schema failure:\n%s", c.out.String())
	}
}

func TestDoctorCmd_InvalidDayEntry(t *testing.T) {
	c, _ := initTestContext(t)
	userID := c.ctx.Config.UserID

	// 02:00 is before the 04:00 wake-up, so no slot exists for it.
	entry := models.DailyEntry{
		UserID:  userID,
		Date:    testNow,
		DayType: models.DayNonCollege,
		Hours:   []models.HourRecord{{Time: "02:00", Activity: "Insomnia", ProductivityLevel: 1}},
	}
	if err := c.ctx.Store.SaveDailyEntry(entry); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(c.ctx); err != nil {
		t.Errorf("day entry problems are warnings, got %v", err)
	}
	if !strings.Contains(c.out.String(), "⚠ Day entries: WARNING") {
		t.Errorf("expected day entry warning:\n%s", c.out.String())
	}
}

func TestCheckClockTimezone(t *testing.T) {
	c, _ := initTestContext(t)
	c.ctx.Config.Timezone = "Not/AZone"
	if err := checkClockTimezone(c.ctx); err == nil {
		t.Error("expected invalid timezone to fail")
	}
}
