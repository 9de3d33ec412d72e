package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/migration"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/postgres"
	"github.com/julianstephens/classlog/internal/storage/sqlite"
)

// OpenStore returns the repository for a database target: a PostgreSQL
// connection string or a SQLite file path.
func OpenStore(target string) (*storage.Repository, error) {
	if postgres.IsConnString(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return storage.NewRepository(postgres.New(target)), nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return nil, err
	}
	return storage.NewRepository(sqlite.NewStore(path)), nil
}

// SchemaStore is implemented by document stores backed by a migrated schema.
type SchemaStore interface {
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)
}

// Backend returns the document store behind the provider, if it exposes one.
func (c *Context) Backend() (storage.DocumentStore, bool) {
	r, ok := c.Store.(interface{ Backend() storage.DocumentStore })
	if !ok {
		return nil, false
	}
	return r.Backend(), true
}

// Schema returns the migrated-schema view of the backend.
func (c *Context) Schema() (SchemaStore, bool) {
	docs, ok := c.Backend()
	if !ok {
		return nil, false
	}
	s, ok := docs.(SchemaStore)
	return s, ok
}
