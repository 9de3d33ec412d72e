// Package memory is a process-local DocumentStore used by tests and dry runs.
package memory

import (
	"sort"
	"sync"

	"github.com/julianstephens/classlog/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]storage.Document
}

func NewStore() *Store {
	return &Store{docs: make(map[string]map[string]storage.Document)}
}

func (s *Store) Init() error           { return nil }
func (s *Store) Load() error           { return nil }
func (s *Store) Close() error          { return nil }
func (s *Store) GetConfigPath() string { return "memory" }

func (s *Store) GetDocument(collection, id string) (storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[collection][id]
	if !ok {
		return storage.Document{}, storage.ErrNotFound
	}
	return clone(doc), nil
}

func (s *Store) PutDocument(doc storage.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.docs[doc.Collection]
	if !ok {
		c = make(map[string]storage.Document)
		s.docs[doc.Collection] = c
	}
	c[doc.ID] = clone(doc)
	return nil
}

func (s *Store) DeleteDocument(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[collection][id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.docs[collection], id)
	return nil
}

// QueryDocuments returns the user's documents ordered by id.
func (s *Store) QueryDocuments(collection, userID string) ([]storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.Document
	for _, doc := range s.docs[collection] {
		if doc.UserID == userID {
			out = append(out, clone(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func clone(d storage.Document) storage.Document {
	d.Body = append([]byte(nil), d.Body...)
	return d
}
