package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/classlog/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateSubjectCode ConflictType = "duplicate_subject_code"
	ConflictEmptySubjectField    ConflictType = "empty_subject_field"
	ConflictInvalidField         ConflictType = "invalid_field"
	ConflictRecordAtBreak        ConflictType = "record_at_break"
	ConflictUnknownSlot          ConflictType = "unknown_slot"
	ConflictMissingSubject       ConflictType = "missing_subject"
	ConflictUnknownSubject       ConflictType = "unknown_subject"
	ConflictInvalidAttendance    ConflictType = "invalid_attendance"
	ConflictInvalidProductivity  ConflictType = "invalid_productivity"
	ConflictDuplicateHour        ConflictType = "duplicate_hour"
)

var (
	// ErrRosterInvalid is returned when a roster with violations is about to be saved.
	ErrRosterInvalid = errors.New("roster has validation errors")
	// ErrProfileInvalid is returned for malformed profile fields.
	ErrProfileInvalid = errors.New("profile has invalid fields")
	// ErrDayInvalid is returned when hour records do not fit the day's slots.
	ErrDayInvalid = errors.New("day entry has validation errors")
	// ErrHealthInvalid is returned for out-of-range health metrics.
	ErrHealthInvalid = errors.New("health metrics have invalid values")
)

// Conflict represents a single violation.
type Conflict struct {
	Type        ConflictType
	Description string
	Semester    int      // semesterNumber (if applicable)
	Items       []string // codes, field names or slot times involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err returns nil when there are no conflicts, otherwise base wrapped with
// the aggregated report.
func (vr *ValidationResult) Err(base error) error {
	if !vr.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%w:\n%s", base, strings.TrimSuffix(vr.FormatReport(), "\n"))
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator validates rosters, profiles and day entries.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// NormalizeCode is the form subject codes are compared in.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateRoster checks every semester for duplicate subject codes and for
// subjects with an empty code or name.
func (v *Validator) ValidateRoster(semesters []models.Semester) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, sem := range semesters {
		if dups := duplicateCodes(sem); len(dups) > 0 {
			result.add(Conflict{
				Type:        ConflictDuplicateSubjectCode,
				Description: fmt.Sprintf("Semester %d has duplicate subject codes: %s", sem.SemesterNumber, strings.Join(dups, ", ")),
				Semester:    sem.SemesterNumber,
				Items:       dups,
			})
		}

		for i, sub := range sem.Subjects {
			var missing []string
			if strings.TrimSpace(sub.Code) == "" {
				missing = append(missing, "code")
			}
			if strings.TrimSpace(sub.Name) == "" {
				missing = append(missing, "name")
			}
			if len(missing) == 0 {
				continue
			}
			result.add(Conflict{
				Type:        ConflictEmptySubjectField,
				Description: fmt.Sprintf("Semester %d subject %d is missing %s", sem.SemesterNumber, i+1, strings.Join(missing, " and ")),
				Semester:    sem.SemesterNumber,
				Items:       missing,
			})
		}
	}

	return result
}

// CheckRoster gates persistence: it returns ErrRosterInvalid with the
// aggregated report while any violation exists.
func (v *Validator) CheckRoster(semesters []models.Semester) error {
	result := v.ValidateRoster(semesters)
	return result.Err(ErrRosterInvalid)
}

// IsDuplicateCode reports whether the subject at index shares its normalised
// code with another subject of the same semester. Empty codes never count.
func IsDuplicateCode(sem models.Semester, index int) bool {
	if index < 0 || index >= len(sem.Subjects) {
		return false
	}
	code := NormalizeCode(sem.Subjects[index].Code)
	if code == "" {
		return false
	}
	for i, sub := range sem.Subjects {
		if i != index && NormalizeCode(sub.Code) == code {
			return true
		}
	}
	return false
}

// duplicateCodes returns the normalised codes occurring more than once, in
// order of first appearance.
func duplicateCodes(sem models.Semester) []string {
	counts := make(map[string]int, len(sem.Subjects))
	var order []string
	for _, sub := range sem.Subjects {
		code := NormalizeCode(sub.Code)
		if code == "" {
			continue
		}
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}

	var dups []string
	for _, code := range order {
		if counts[code] > 1 {
			dups = append(dups, code)
		}
	}
	return dups
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
