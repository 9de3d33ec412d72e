package health

import (
	"math"
	"sort"

	"github.com/julianstephens/classlog/internal/models"
)

// Averages are the mean values over a health history.
type Averages struct {
	Count          int
	MorningWeight  float64 // one decimal
	GlassesOfWater int
	Steps          int
	CaloriesBurnt  int
}

// Recent returns up to n entries with the latest dates, newest first.
// Entries without a date are left out.
func Recent(entries []models.HealthMetricEntry, n int) []models.HealthMetricEntry {
	out := make([]models.HealthMetricEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.IsZero() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Average computes the means over history. ok is false for an empty history.
func Average(history []models.HealthMetricEntry) (Averages, bool) {
	if len(history) == 0 {
		return Averages{}, false
	}

	var weight float64
	var water, steps, calories int
	for _, e := range history {
		weight += e.MorningWeight
		water += e.GlassesOfWater
		steps += e.Steps
		calories += e.CaloriesBurnt
	}

	n := float64(len(history))
	return Averages{
		Count:          len(history),
		MorningWeight:  math.Round(weight/n*10) / 10,
		GlassesOfWater: int(math.Round(float64(water) / n)),
		Steps:          int(math.Round(float64(steps) / n)),
		CaloriesBurnt:  int(math.Round(float64(calories) / n)),
	}, true
}
