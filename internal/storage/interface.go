package storage

import "github.com/julianstephens/classlog/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	GetUser(userID string) (models.UserDocument, error)
	SaveUser(userID string, doc models.UserDocument) error

	// Daily entries
	GetDailyEntry(userID, day string) (models.DailyEntry, error)
	SaveDailyEntry(models.DailyEntry) error
	ListDailyEntries(userID string) ([]models.DailyEntry, error)

	// Health metrics
	GetHealthMetric(userID, day string) (models.HealthMetricEntry, error)
	SaveHealthMetric(models.HealthMetricEntry) error
	ListHealthMetrics(userID string) ([]models.HealthMetricEntry, error)

	// Reminders
	AddReminder(models.Reminder) (models.Reminder, error)
	GetReminder(id string) (models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error
	ListReminders(userID string) ([]models.Reminder, error)

	// Utils
	GetConfigPath() string
}
