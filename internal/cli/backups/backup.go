package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/classlog/internal/backup"
	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/storage/sqlite"
)

var errNotSQLite = errors.New("backups are only available for SQLite databases")

// manager returns the backup manager of the SQLite database behind ctx.
func manager(ctx *cli.Context) (*backup.Manager, error) {
	docs, ok := ctx.Backend()
	if !ok {
		return nil, errNotSQLite
	}
	if _, ok := docs.(*sqlite.Store); !ok {
		return nil, errNotSQLite
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	info, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	ctx.Printf("✓ Backup created: %s (%s)\n", info.Name(), info.HumanSize())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(list) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	now := ctx.Clock()
	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(list), constants.MaxBackups)
	for _, b := range list {
		ctx.Printf("  %s  %s  %8s  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Name(), b.HumanSize(),
			cli.MutedStyle.Render(b.Age(now)))
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := resolveBackup(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	ctx.Println("⚠ WARNING: This will replace your current database with the backup.")
	ctx.Println("⚠ All classlog processes (including the TUI) must be stopped before restore.")
	ctx.Println("A backup of your current database will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Continue with the restore?").
			Affirmative("Restore").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeBase()).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// The restore replaces the file underneath the open connection.
	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database connection before restore", "error", err)
	}

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Database restored successfully!")
	if safety.Path != "" {
		ctx.Printf("  Previous database saved as %s\n", safety.Name())
	}
	ctx.Println("⚠ Remember to restart any classlog processes that were stopped for the restore.")
	return nil
}

// resolveBackup accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory.
func resolveBackup(mgr *backup.Manager, name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.Dir(), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.Dir())
}
