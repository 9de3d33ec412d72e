package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/migration"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/migrations"
)

type Store struct {
	path string
	db   *sqlx.DB
}

var _ storage.DocumentStore = (*Store)(nil)

// documentRow mirrors the documents table; updated_at is RFC 3339 text.
type documentRow struct {
	Collection string `db:"collection"`
	ID         string `db:"id"`
	UserID     string `db:"user_id"`
	Body       string `db:"body"`
	UpdatedAt  string `db:"updated_at"`
}

func (r documentRow) document() storage.Document {
	t, err := time.Parse(time.RFC3339Nano, r.UpdatedAt)
	if err != nil {
		logger.Debug("Unparseable updated_at", "collection", r.Collection, "id", r.ID, "value", r.UpdatedAt)
	}
	return storage.Document{
		Collection: r.Collection,
		ID:         r.ID,
		UserID:     r.UserID,
		Body:       []byte(r.Body),
		UpdatedAt:  t,
	}
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file and applies pending migrations.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.runMigrations()
}

// Load opens an existing database and checks its schema version.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'classlog init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.Validate()
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub), nil
}

func (s *Store) runMigrations() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	_, err = r.Apply(func(msg string) {
		logger.Info(msg)
	})
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Migrate applies pending migrations to an already opened database.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if err := s.open(); err != nil {
		return 0, err
	}
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.Apply(logFn)
}

// SchemaStatus reports the applied and latest schema versions.
func (s *Store) SchemaStatus() (migration.Status, error) {
	if s.db == nil {
		return migration.Status{}, errors.New("database not loaded")
	}
	r, err := s.runner()
	if err != nil {
		return migration.Status{}, err
	}
	return r.Status()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	if s.db == nil {
		return nil
	}
	return s.db.DB
}
