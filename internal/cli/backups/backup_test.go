package backups

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/cli/clitest"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/sqlite"
)

func setupSQLite(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "classlog.db")
	store := storage.NewRepository(sqlite.NewStore(dbPath))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := &cli.Context{Store: store, Out: &out, UserID: clitest.UserID}
	if err := store.SaveUser(clitest.UserID, clitest.Profile()); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	return ctx, &out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupSQLite(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("expected empty list, got %s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: classlog-") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") || !strings.Contains(out.String(), ".db") {
		t.Errorf("unexpected list output: %s", out.String())
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	ctx, out := setupSQLite(t)

	mgr, err := manager(ctx)
	if err != nil {
		t.Fatalf("manager failed: %v", err)
	}
	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	changed := clitest.Profile()
	changed.WakeUpTime = "05:30"
	if err := ctx.Store.SaveUser(clitest.UserID, changed); err != nil {
		t.Fatalf("failed to change profile: %v", err)
	}

	if err := (&BackupRestoreCmd{BackupFile: info.Name(), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") || !strings.Contains(out.String(), "Previous database saved as") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	doc, err := ctx.Store.GetUser(clitest.UserID)
	if err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	if doc.WakeUpTime != clitest.Profile().WakeUpTime {
		t.Errorf("expected the backed up wake time, got %s", doc.WakeUpTime)
	}
}

func TestBackupRestoreCmd_Missing(t *testing.T) {
	ctx, _ := setupSQLite(t)
	err := (&BackupRestoreCmd{BackupFile: "classlog-19990101-000000.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBackups_RequireSQLite(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	for name, run := range map[string]func(*cli.Context) error{
		"create":  (&BackupCreateCmd{}).Run,
		"list":    (&BackupListCmd{}).Run,
		"restore": (&BackupRestoreCmd{BackupFile: "x.db", Yes: true}).Run,
	} {
		if err := run(ctx); !errors.Is(err, errNotSQLite) {
			t.Errorf("%s: expected errNotSQLite, got %v", name, err)
		}
	}
}
