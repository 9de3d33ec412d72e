package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
)

// ValidateDay checks hour records against the day's slots. sem is the roster
// college hours pick subjects from; with a nil sem subject codes are not
// checked against a roster.
func (v *Validator) ValidateDay(slots []models.Slot, sem *models.Semester, hours []models.HourRecord) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byTime := make(map[string]models.Slot, len(slots))
	for _, s := range slots {
		byTime[s.Time] = s
	}

	seen := make(map[string]bool, len(hours))
	dup := make(map[string]bool)
	for _, h := range hours {
		if seen[h.Time] {
			dup[h.Time] = true
		}
		seen[h.Time] = true
	}
	for _, t := range sortedKeys(dup) {
		result.add(Conflict{
			Type:        ConflictDuplicateHour,
			Description: fmt.Sprintf("More than one record for %s", t),
			Items:       []string{t},
		})
	}

	for _, h := range hours {
		slot, ok := byTime[h.Time]
		if !ok {
			result.add(Conflict{
				Type:        ConflictUnknownSlot,
				Description: fmt.Sprintf("No slot at %s for this day", h.Time),
				Items:       []string{h.Time},
			})
			continue
		}

		switch slot.Kind {
		case models.SlotBreak:
			result.add(Conflict{
				Type:        ConflictRecordAtBreak,
				Description: fmt.Sprintf("%s (%s) is a break and collects no data", slot.Label, slot.Time),
				Items:       []string{h.Time},
			})
		case models.SlotCollegeHour:
			v.checkCollegeHour(&result, slot, sem, h)
		default:
			if h.ProductivityLevel != 0 && !models.ValidProductivityLevel(h.ProductivityLevel) {
				result.add(Conflict{
					Type:        ConflictInvalidProductivity,
					Description: fmt.Sprintf("%s has productivity level %d; expected one of %v", slot.Label, h.ProductivityLevel, constants.ProductivityLevels),
					Items:       []string{h.Time},
				})
			}
		}
	}

	return result
}

func (v *Validator) checkCollegeHour(result *ValidationResult, slot models.Slot, sem *models.Semester, h models.HourRecord) {
	code := strings.TrimSpace(h.Subject)
	if code == "" {
		result.add(Conflict{
			Type:        ConflictMissingSubject,
			Description: fmt.Sprintf("%s (%s) needs a subject", slot.Label, slot.Time),
			Items:       []string{h.Time},
		})
	} else if sem != nil {
		if _, ok := sem.FindSubject(code); !ok {
			result.add(Conflict{
				Type:        ConflictUnknownSubject,
				Description: fmt.Sprintf("%s (%s): subject %q is not in semester %d", slot.Label, slot.Time, code, sem.SemesterNumber),
				Semester:    sem.SemesterNumber,
				Items:       []string{h.Time, code},
			})
		}
	}

	if h.Attendance != "" && !h.Attendance.Valid() {
		result.add(Conflict{
			Type:        ConflictInvalidAttendance,
			Description: fmt.Sprintf("%s (%s) has unknown attendance %q", slot.Label, slot.Time, h.Attendance),
			Items:       []string{h.Time},
		})
	}
}
