package postgres

import (
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/julianstephens/classlog/internal/storage"
)

// Set CLASSLOG_TEST_POSTGRES to a password-free connection string to run.
func setupIntegrationStore(t *testing.T) *Store {
	t.Helper()
	connStr := os.Getenv("CLASSLOG_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("CLASSLOG_TEST_POSTGRES not set")
	}
	s := New(connStr)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIntegrationDocumentRoundTrip(t *testing.T) {
	s := setupIntegrationStore(t)
	userID := uuid.NewString()
	id := userID + "_2026-10-16"

	doc := storage.Document{Collection: storage.CollectionDailyEntries, ID: id, UserID: userID, Body: []byte(`{"dayType":"college"}`)}
	if err := s.PutDocument(doc); err != nil {
		t.Fatalf("PutDocument() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.DeleteDocument(storage.CollectionDailyEntries, id) })

	docs, err := s.QueryDocuments(storage.CollectionDailyEntries, userID)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Errorf("QueryDocuments() = %+v", docs)
	}

	if _, err := s.GetDocument(storage.CollectionDailyEntries, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetDocument(missing) error = %v", err)
	}
}
