package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/classlog/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "classlog.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE documents (collection TEXT, id TEXT, body TEXT, PRIMARY KEY (collection, id))`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO documents VALUES ('users', 'u1', '{"wakeUpTime":"04:00"}')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		t.Fatalf("failed to count rows in %s: %v", path, err)
	}
	return n
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local))

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if filepath.Dir(info.Path) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written to %s", info.Path)
	}
	if info.Name() != "classlog-20261017-093000.db" {
		t.Errorf("Name() = %q", info.Name())
	}
	if info.Size == 0 || info.HumanSize() == "" {
		t.Errorf("unexpected size info: %+v", info)
	}
	if n := countRows(t, info.Path); n != 1 {
		t.Errorf("backup has %d rows, want 1", n)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestSameSecondBackupsAreUnique(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	stamp := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return stamp }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create() #%d failed: %v", i, err)
		}
		if seen[info.Path] {
			t.Fatalf("duplicate backup path %s", info.Path)
		}
		seen[info.Path] = true
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Errorf("List() returned %d backups, want 3", len(list))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3
	mgr.now = fixedClock(time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	var last Info
	for i := 0; i < 5; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatal(err)
		}
		last = info
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List() returned %d backups after rotation, want 3", len(list))
	}
	if list[0].Path != last.Path {
		t.Errorf("newest backup = %s, want %s", list[0].Name(), last.Name())
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "classlog-garbage.db", "other-20261017-093000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("List() = %+v, want none", list)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want string
	}{
		{"classlog-20261017-093000.db", true, "2026-10-17 09:30:00"},
		{"classlog-20261017-093000-2.db", true, "2026-10-17 09:30:00"},
		{"classlog-2026.db", false, ""},
		{"notes-20261017-093000.db", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseName(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && ts.Format("2006-01-02 15:04:05") != tt.want {
				t.Errorf("parseName(%q) = %v, want %s", tt.name, ts, tt.want)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	snap, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO documents VALUES ('users', 'u2', '{}')`); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if n := countRows(t, dbPath); n != 2 {
		t.Fatalf("expected 2 rows before restore, got %d", n)
	}

	safety, err := mgr.Restore(snap.Path)
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if n := countRows(t, dbPath); n != 1 {
		t.Errorf("expected 1 row after restore, got %d", n)
	}
	if safety.Path == "" || countRows(t, safety.Path) != 2 {
		t.Error("restore should snapshot the replaced database")
	}
}

func TestRestoreRejectsCorruptBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bad := filepath.Join(t.TempDir(), "classlog-20261017-093000.db")
	if err := os.WriteFile(bad, []byte("definitely not sqlite, just enough bytes to fail the header check"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := mgr.Restore(bad)
	if err == nil || !strings.Contains(err.Error(), "corrupted or invalid") {
		t.Errorf("Restore() error = %v", err)
	}
	if n := countRows(t, dbPath); n != 1 {
		t.Errorf("database modified by failed restore: %d rows", n)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	info := Info{Timestamp: now.Add(-3 * time.Hour)}
	if got := info.Age(now); got != "3 hours ago" {
		t.Errorf("Age() = %q", got)
	}
}
