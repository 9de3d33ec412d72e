package models

import "time"

// Reminder is the persisted shape of reminders/{autoId}.
type Reminder struct {
	ID             string     `json:"-"`
	UserID         string     `json:"userId"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Duration       float64    `json:"duration"` // expected effort in hours
	Deadline       time.Time  `json:"deadline"`
	ReminderPeriod int        `json:"reminderPeriod"` // days before the deadline to alert
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}
