package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/migration"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/migrations"
)

type Store struct {
	connStr string
	db      *sqlx.DB
}

var _ storage.DocumentStore = (*Store)(nil)

type documentRow struct {
	Collection string    `db:"collection"`
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Body       []byte    `db:"body"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr, constants.AppName)}
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sqlx.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

// Init creates the application schema and applies pending migrations.
func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := r.Apply(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load connects and checks the schema version.
func (s *Store) Load() error {
	if err := s.open(); err != nil {
		return err
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.Validate()
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
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub), nil
}

// Migrate applies pending migrations.
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

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}

func (s *Store) GetDocument(collection, id string) (storage.Document, error) {
	var row documentRow
	err := s.db.Get(&row, s.db.Rebind(
		"SELECT collection, id, user_id, body, updated_at FROM documents WHERE collection = ? AND id = ?"),
		collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Document{}, storage.ErrNotFound
		}
		return storage.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return storage.Document(row), nil
}

func (s *Store) PutDocument(doc storage.Document) error {
	// Body goes over the wire as text; pq would send []byte as bytea.
	_, err := s.db.Exec(s.db.Rebind(`
		INSERT INTO documents (collection, id, user_id, body, updated_at)
		VALUES (?, ?, ?, ?::jsonb, ?)
		ON CONFLICT (collection, id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at`),
		doc.Collection, doc.ID, doc.UserID, string(doc.Body), doc.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return nil
}

func (s *Store) DeleteDocument(collection, id string) error {
	res, err := s.db.Exec(s.db.Rebind("DELETE FROM documents WHERE collection = ? AND id = ?"), collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) QueryDocuments(collection, userID string) ([]storage.Document, error) {
	var rows []documentRow
	err := s.db.Select(&rows, s.db.Rebind(
		"SELECT collection, id, user_id, body, updated_at FROM documents WHERE collection = ? AND user_id = ? ORDER BY id"),
		collection, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	out := make([]storage.Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, storage.Document(r))
	}
	return out, nil
}
