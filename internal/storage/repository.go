package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/classlog/internal/logger"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/validation"
)

// Repository maps the typed domain documents onto a DocumentStore.
type Repository struct {
	docs      DocumentStore
	validator *validation.Validator
	now       func() time.Time
}

var _ Provider = (*Repository)(nil)

func NewRepository(docs DocumentStore) *Repository {
	return &Repository{
		docs:      docs,
		validator: validation.New(),
		now:       time.Now,
	}
}

func (r *Repository) Init() error           { return r.docs.Init() }
func (r *Repository) Load() error           { return r.docs.Load() }
func (r *Repository) Close() error          { return r.docs.Close() }
func (r *Repository) GetConfigPath() string { return r.docs.GetConfigPath() }

// Backend returns the underlying document store.
func (r *Repository) Backend() DocumentStore { return r.docs }

func (r *Repository) GetUser(userID string) (models.UserDocument, error) {
	var doc models.UserDocument
	err := r.get(CollectionUsers, userID, &doc)
	return doc, err
}

// SaveUser overwrites the user document. Saving is refused while the roster
// has violations; the error wraps validation.ErrRosterInvalid.
func (r *Repository) SaveUser(userID string, doc models.UserDocument) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	if err := r.validator.CheckRoster(doc.Semesters); err != nil {
		return err
	}
	return r.put(CollectionUsers, userID, userID, doc)
}

func (r *Repository) GetDailyEntry(userID, day string) (models.DailyEntry, error) {
	var e models.DailyEntry
	err := r.get(CollectionDailyEntries, models.EntryKey(userID, day), &e)
	return e, err
}

func (r *Repository) SaveDailyEntry(e models.DailyEntry) error {
	if e.UserID == "" {
		return errors.New("daily entry has no user id")
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = r.now()
	}
	return r.put(CollectionDailyEntries, models.EntryKey(e.UserID, e.Day()), e.UserID, e)
}

func (r *Repository) ListDailyEntries(userID string) ([]models.DailyEntry, error) {
	docs, err := r.docs.QueryDocuments(CollectionDailyEntries, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.DailyEntry, 0, len(docs))
	for _, d := range docs {
		var e models.DailyEntry
		if err := json.Unmarshal(d.Body, &e); err != nil {
			// One bad document should not hide the rest of the history.
			logger.Warn("Skipping unreadable daily entry", "id", d.ID, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *Repository) GetHealthMetric(userID, day string) (models.HealthMetricEntry, error) {
	var h models.HealthMetricEntry
	err := r.get(CollectionHealthMetrics, models.EntryKey(userID, day), &h)
	return h, err
}

func (r *Repository) SaveHealthMetric(h models.HealthMetricEntry) error {
	if h.UserID == "" {
		return errors.New("health metric has no user id")
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = r.now()
	}
	return r.put(CollectionHealthMetrics, models.EntryKey(h.UserID, h.Day()), h.UserID, h)
}

func (r *Repository) ListHealthMetrics(userID string) ([]models.HealthMetricEntry, error) {
	docs, err := r.docs.QueryDocuments(CollectionHealthMetrics, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.HealthMetricEntry, 0, len(docs))
	for _, d := range docs {
		var h models.HealthMetricEntry
		if err := json.Unmarshal(d.Body, &h); err != nil {
			logger.Warn("Skipping unreadable health metric", "id", d.ID, "error", err)
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// AddReminder stores a new reminder under a generated id and returns it.
func (r *Repository) AddReminder(rem models.Reminder) (models.Reminder, error) {
	if rem.UserID == "" {
		return models.Reminder{}, errors.New("reminder has no user id")
	}
	if rem.ID == "" {
		rem.ID = uuid.NewString()
	}
	if rem.CreatedAt.IsZero() {
		rem.CreatedAt = r.now()
	}
	if err := r.put(CollectionReminders, rem.ID, rem.UserID, rem); err != nil {
		return models.Reminder{}, err
	}
	return rem, nil
}

func (r *Repository) GetReminder(id string) (models.Reminder, error) {
	var rem models.Reminder
	if err := r.get(CollectionReminders, id, &rem); err != nil {
		return models.Reminder{}, err
	}
	rem.ID = id
	return rem, nil
}

// UpdateReminder overwrites an existing reminder and stamps UpdatedAt.
func (r *Repository) UpdateReminder(rem models.Reminder) error {
	if _, err := r.docs.GetDocument(CollectionReminders, rem.ID); err != nil {
		return err
	}
	now := r.now()
	rem.UpdatedAt = &now
	return r.put(CollectionReminders, rem.ID, rem.UserID, rem)
}

func (r *Repository) DeleteReminder(id string) error {
	return r.docs.DeleteDocument(CollectionReminders, id)
}

func (r *Repository) ListReminders(userID string) ([]models.Reminder, error) {
	docs, err := r.docs.QueryDocuments(CollectionReminders, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Reminder, 0, len(docs))
	for _, d := range docs {
		var rem models.Reminder
		if err := json.Unmarshal(d.Body, &rem); err != nil {
			logger.Warn("Skipping unreadable reminder", "id", d.ID, "error", err)
			continue
		}
		rem.ID = d.ID
		out = append(out, rem)
	}
	return out, nil
}

func (r *Repository) get(collection, id string, v any) error {
	doc, err := r.docs.GetDocument(collection, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(doc.Body, v); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *Repository) put(collection, id, userID string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	return r.docs.PutDocument(Document{
		Collection: collection,
		ID:         id,
		UserID:     userID,
		Body:       body,
		UpdatedAt:  r.now(),
	})
}
