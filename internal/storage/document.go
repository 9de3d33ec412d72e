package storage

import (
	"errors"
	"time"
)

// Collections of the document store. Keys follow the original layout:
// users/{userId}, dailyEntries/{userId}_{date}, healthMetrics/{userId}_{date}
// and reminders/{autoId}.
const (
	CollectionUsers         = "users"
	CollectionDailyEntries  = "dailyEntries"
	CollectionHealthMetrics = "healthMetrics"
	CollectionReminders     = "reminders"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is one JSON body stored under (Collection, ID). UserID is kept
// alongside the body so per-user queries never parse JSON.
type Document struct {
	Collection string
	ID         string
	UserID     string
	Body       []byte
	UpdatedAt  time.Time
}

// DocumentStore is the backend contract: get, whole-document put, delete,
// and equality query on user id. Sorting and filtering happen in the caller.
type DocumentStore interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	GetDocument(collection, id string) (Document, error)
	PutDocument(doc Document) error
	DeleteDocument(collection, id string) error
	QueryDocuments(collection, userID string) ([]Document, error)

	// Utils
	GetConfigPath() string
}
