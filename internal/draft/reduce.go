package draft

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
)

type ActionKind string

const (
	ActSetSchedule      ActionKind = "set_schedule"
	ActSetResidence     ActionKind = "set_residence"
	ActSetHealthMetrics ActionKind = "set_health_metrics"
	ActAddActivity      ActionKind = "add_activity"
	ActSetActivity      ActionKind = "set_activity"
	ActRemoveActivity   ActionKind = "remove_activity"
	ActAddSemester      ActionKind = "add_semester"
	ActRemoveSemester   ActionKind = "remove_semester"
	ActSetSemester      ActionKind = "set_semester"
	ActAddSubject       ActionKind = "add_subject"
	ActRemoveSubject    ActionKind = "remove_subject"
	ActSetSubject       ActionKind = "set_subject"
	ActSetUnitName      ActionKind = "set_unit_name"
	ActNextStep         ActionKind = "next_step"
	ActPrevStep         ActionKind = "prev_step"
)

// Action is one edit. Field names a JSON field; the index fields address
// list elements and are ignored by actions that do not need them.
type Action struct {
	Kind     ActionKind `json:"kind"`
	Field    string     `json:"field,omitempty"`
	Value    string     `json:"value,omitempty"`
	Index    int        `json:"index,omitempty"`
	Semester int        `json:"semester,omitempty"`
	Subject  int        `json:"subject,omitempty"`
	Unit     int        `json:"unit,omitempty"`
}

func SetSchedule(field, value string) Action {
	return Action{Kind: ActSetSchedule, Field: field, Value: value}
}

func SetResidence(r models.ResidenceType) Action {
	return Action{Kind: ActSetResidence, Value: string(r)}
}

func SetHealthMetrics(enabled bool) Action {
	return Action{Kind: ActSetHealthMetrics, Value: strconv.FormatBool(enabled)}
}

func AddActivity(list string) Action {
	return Action{Kind: ActAddActivity, Field: list}
}

func SetActivity(list string, index int, value string) Action {
	return Action{Kind: ActSetActivity, Field: list, Index: index, Value: value}
}

func RemoveActivity(list string, index int) Action {
	return Action{Kind: ActRemoveActivity, Field: list, Index: index}
}

func AddSemester() Action {
	return Action{Kind: ActAddSemester}
}

func RemoveSemester(sem int) Action {
	return Action{Kind: ActRemoveSemester, Semester: sem}
}

func SetSemester(sem int, field, value string) Action {
	return Action{Kind: ActSetSemester, Semester: sem, Field: field, Value: value}
}

func AddSubject(sem int) Action {
	return Action{Kind: ActAddSubject, Semester: sem}
}

func RemoveSubject(sem, sub int) Action {
	return Action{Kind: ActRemoveSubject, Semester: sem, Subject: sub}
}

func SetSubject(sem, sub int, field, value string) Action {
	return Action{Kind: ActSetSubject, Semester: sem, Subject: sub, Field: field, Value: value}
}

func SetUnitName(sem, sub, unit int, value string) Action {
	return Action{Kind: ActSetUnitName, Semester: sem, Subject: sub, Unit: unit, Value: value}
}

func NextStep() Action { return Action{Kind: ActNextStep} }
func PrevStep() Action { return Action{Kind: ActPrevStep} }

// Reduce applies a to a copy of d. d is left untouched, also on error.
func Reduce(d Draft, a Action) (Draft, error) {
	next := Draft{Doc: d.Doc.Clone(), Step: d.Step}
	doc := &next.Doc

	switch a.Kind {
	case ActSetSchedule:
		field, ok := scheduleFields[a.Field]
		if !ok {
			return d, fmt.Errorf("%w: %s", ErrUnknownField, a.Field)
		}
		*field(&doc.ScheduleProfile) = strings.TrimSpace(a.Value)

	case ActSetResidence:
		r := models.ResidenceType(a.Value)
		if r != models.ResidenceDayScholar && r != models.ResidenceHosteller {
			return d, fmt.Errorf("%w: residence type %q", ErrInvalidValue, a.Value)
		}
		doc.ResidenceType = r

	case ActSetHealthMetrics:
		b, err := parseBool(a.Value)
		if err != nil {
			return d, err
		}
		doc.EnableHealthMetrics = b

	case ActAddActivity:
		list, err := activityList(doc, a.Field)
		if err != nil {
			return d, err
		}
		*list = append(*list, "")

	case ActSetActivity:
		list, err := activityList(doc, a.Field)
		if err != nil {
			return d, err
		}
		if a.Index < 0 || a.Index >= len(*list) {
			return d, fmt.Errorf("%w: activity %d", ErrIndexOutOfRange, a.Index)
		}
		(*list)[a.Index] = a.Value

	case ActRemoveActivity:
		list, err := activityList(doc, a.Field)
		if err != nil {
			return d, err
		}
		if a.Index < 0 || a.Index >= len(*list) {
			return d, fmt.Errorf("%w: activity %d", ErrIndexOutOfRange, a.Index)
		}
		// the last activity stays
		if len(*list) > 1 {
			*list = append((*list)[:a.Index], (*list)[a.Index+1:]...)
		}

	case ActAddSemester:
		number := len(doc.Semesters) + 1
		if number > constants.MaxSemesterNumber {
			number = constants.MaxSemesterNumber
		}
		doc.Semesters = append(doc.Semesters, newSemester(number))

	case ActRemoveSemester:
		if _, err := semesterAt(doc, a.Semester); err != nil {
			return d, err
		}
		doc.Semesters = append(doc.Semesters[:a.Semester], doc.Semesters[a.Semester+1:]...)

	case ActSetSemester:
		sem, err := semesterAt(doc, a.Semester)
		if err != nil {
			return d, err
		}
		if err := setSemesterField(sem, a.Field, a.Value); err != nil {
			return d, err
		}

	case ActAddSubject:
		sem, err := semesterAt(doc, a.Semester)
		if err != nil {
			return d, err
		}
		sem.Subjects = append(sem.Subjects, NewSubject())

	case ActRemoveSubject:
		if _, err := subjectAt(doc, a.Semester, a.Subject); err != nil {
			return d, err
		}
		sem := &doc.Semesters[a.Semester]
		// the last subject stays
		if len(sem.Subjects) > 1 {
			sem.Subjects = append(sem.Subjects[:a.Subject], sem.Subjects[a.Subject+1:]...)
		}

	case ActSetSubject:
		sub, err := subjectAt(doc, a.Semester, a.Subject)
		if err != nil {
			return d, err
		}
		if err := setSubjectField(sub, a.Field, a.Value); err != nil {
			return d, err
		}

	case ActSetUnitName:
		sub, err := subjectAt(doc, a.Semester, a.Subject)
		if err != nil {
			return d, err
		}
		if a.Unit < 0 || a.Unit >= len(sub.Units) {
			return d, fmt.Errorf("%w: unit %d", ErrIndexOutOfRange, a.Unit)
		}
		sub.Units[a.Unit].Name = a.Value

	case ActNextStep:
		next.Step = min(next.Step+1, LastStep)

	case ActPrevStep:
		next.Step = max(next.Step-1, FirstStep)

	default:
		return d, fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}

	return next, nil
}

// ReduceAll applies actions in order, stopping at the first error.
func ReduceAll(d Draft, actions ...Action) (Draft, error) {
	var err error
	for _, a := range actions {
		if d, err = Reduce(d, a); err != nil {
			return d, err
		}
	}
	return d, nil
}

func setSemesterField(sem *models.Semester, field, value string) error {
	switch field {
	case "semesterNumber":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < constants.MinSemesterNumber || n > constants.MaxSemesterNumber {
			return fmt.Errorf("%w: semester number %q", ErrInvalidValue, value)
		}
		sem.SemesterNumber = n
	case "startDate":
		sem.StartDate = strings.TrimSpace(value)
	case "endDate":
		sem.EndDate = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func setSubjectField(sub *models.Subject, field, value string) error {
	switch field {
	case "code":
		sub.Code = value
	case "name":
		sub.Name = value
	case "facultyInitials":
		sub.FacultyInitials = value
	case "courseType":
		ct := models.CourseType(value)
		if ct != models.CourseTheory && ct != models.CourseTCP && ct != models.CoursePractical {
			return fmt.Errorf("%w: course type %q", ErrInvalidValue, value)
		}
		sub.CourseType = ct
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}
