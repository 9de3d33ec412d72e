package attendance

import "github.com/julianstephens/classlog/internal/constants"

// Band groups a percentage for display.
type Band string

const (
	BandGood    Band = "good"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

// BandFor classifies an attendance percentage.
func BandFor(percentage int) Band {
	switch {
	case percentage >= constants.AttendanceThreshold:
		return BandGood
	case percentage >= constants.AttendanceWarningLevel:
		return BandWarning
	default:
		return BandDanger
	}
}

// Color is the hex colour used for the band.
func (b Band) Color() string {
	switch b {
	case BandGood:
		return "#2e7d32"
	case BandWarning:
		return "#f57c00"
	default:
		return "#d32f2f"
	}
}
