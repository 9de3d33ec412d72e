package models

import (
	"time"

	"github.com/julianstephens/classlog/internal/constants"
)

// HealthMetricEntry is the persisted shape of healthMetrics/{userId}_{yyyy-MM-dd}.
type HealthMetricEntry struct {
	UserID         string    `json:"userId"`
	Date           time.Time `json:"date"`
	MorningWeight  float64   `json:"morningWeight" validate:"gte=0,lte=500"`
	GlassesOfWater int       `json:"glassesOfWater" validate:"gte=0,lte=50"`
	Steps          int       `json:"steps" validate:"gte=0"`
	CaloriesBurnt  int       `json:"caloriesBurnt" validate:"gte=0"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Day returns the metric's calendar date (YYYY-MM-DD).
func (h HealthMetricEntry) Day() string {
	return h.Date.Format(constants.DateFormat)
}
