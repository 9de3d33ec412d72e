package system

import (
	"fmt"

	"github.com/julianstephens/classlog/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	schema, ok := ctx.Schema()
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}

	if c.Status {
		st, err := schema.SchemaStatus()
		if err != nil {
			return err
		}
		ctx.Printf("Schema version %d of %d (%d pending)\n", st.Current, st.Latest, st.Pending())
		return nil
	}

	count, err := schema.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
