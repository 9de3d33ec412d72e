package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/classlog/internal/storage"
)

func (s *Store) GetDocument(collection, id string) (storage.Document, error) {
	var row documentRow
	err := s.db.Get(&row,
		"SELECT collection, id, user_id, body, updated_at FROM documents WHERE collection = ? AND id = ?",
		collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Document{}, storage.ErrNotFound
		}
		return storage.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return row.document(), nil
}

// PutDocument replaces the whole document; the last write wins.
func (s *Store) PutDocument(doc storage.Document) error {
	_, err := s.db.NamedExec(`
		INSERT INTO documents (collection, id, user_id, body, updated_at)
		VALUES (:collection, :id, :user_id, :body, :updated_at)
		ON CONFLICT (collection, id) DO UPDATE SET
			user_id = excluded.user_id,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		documentRow{
			Collection: doc.Collection,
			ID:         doc.ID,
			UserID:     doc.UserID,
			Body:       string(doc.Body),
			UpdatedAt:  doc.UpdatedAt.UTC().Format(time.RFC3339Nano),
		})
	if err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", doc.Collection, doc.ID, err)
	}
	return nil
}

func (s *Store) DeleteDocument(collection, id string) error {
	res, err := s.db.Exec("DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
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
	err := s.db.Select(&rows,
		"SELECT collection, id, user_id, body, updated_at FROM documents WHERE collection = ? AND user_id = ? ORDER BY id",
		collection, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	out := make([]storage.Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.document())
	}
	return out, nil
}
