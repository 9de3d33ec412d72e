package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/sqlite"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

// setupTestContext returns a context over an uninitialised SQLite database
// in a temporary config directory.
func setupTestContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	t.Setenv("CLASSLOG_USER_ID", "")
	t.Setenv("CLASSLOG_TIMEZONE", "")

	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	dbPath := filepath.Join(dir, "test.db")
	store := storage.NewRepository(sqlite.NewStore(dbPath))

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:  store,
		Config: cfg,
		Out:    &out,
		Now:    func() time.Time { return testNow },
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, dbPath, &out
}

func sqliteBackend(t *testing.T, ctx *cli.Context) *sqlite.Store {
	t.Helper()
	docs, ok := ctx.Backend()
	if !ok {
		t.Fatal("expected a repository-backed store")
	}
	s, ok := docs.(*sqlite.Store)
	if !ok {
		t.Fatal("expected a SQLite store")
	}
	return s
}

type cliContext struct {
	ctx *cli.Context
	out *bytes.Buffer
}
