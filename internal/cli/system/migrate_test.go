package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/memory"
)

func TestMigrateCmd_UpToDate(t *testing.T) {
	c, _ := initTestContext(t)

	if err := (&MigrateCmd{}).Run(c.ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(c.out.String(), "Database is up to date") {
		t.Errorf("unexpected output:\n%s", c.out.String())
	}
}

func TestMigrateCmd_Status(t *testing.T) {
	c, _ := initTestContext(t)

	if err := (&MigrateCmd{Status: true}).Run(c.ctx); err != nil {
		t.Fatalf("migrate --status failed: %v", err)
	}
	if !strings.Contains(c.out.String(), "(0 pending)") {
		t.Errorf("unexpected output:\n%s", c.out.String())
	}
}

func TestMigrateCmd_MemoryStore(t *testing.T) {
	ctx := &cli.Context{Store: storage.NewRepository(memory.NewStore())}
	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected migrate to reject the in-memory store")
	}
}
