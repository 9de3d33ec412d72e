package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/validation"
)

// SubjectArg is a subject as typed on the command line:
// CODE:Name[:FACULTY[:courseType]].
type SubjectArg struct {
	Code       string
	Name       string
	Faculty    string
	CourseType string
}

func ParseSubjectArg(s string) (SubjectArg, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return SubjectArg{}, fmt.Errorf("invalid subject %q (expected CODE:Name[:FACULTY[:type]])", s)
	}
	arg := SubjectArg{
		Code: strings.TrimSpace(parts[0]),
		Name: strings.TrimSpace(parts[1]),
	}
	if len(parts) > 2 {
		arg.Faculty = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		arg.CourseType = strings.ToLower(strings.TrimSpace(parts[3]))
	}
	return arg, nil
}

// SubjectActions sets the fields of subject sub in semester sem.
func SubjectActions(sem, sub int, arg SubjectArg) []draft.Action {
	actions := []draft.Action{
		draft.SetSubject(sem, sub, "code", arg.Code),
		draft.SetSubject(sem, sub, "name", arg.Name),
	}
	if arg.Faculty != "" {
		actions = append(actions, draft.SetSubject(sem, sub, "facultyInitials", arg.Faculty))
	}
	if arg.CourseType != "" {
		actions = append(actions, draft.SetSubject(sem, sub, "courseType", arg.CourseType))
	}
	return actions
}

// FillSemester sets the fields of the semester at index sem and fills its
// subjects. The semester is expected to hold the single blank subject a new
// semester starts with; the first arg fills it.
func FillSemester(sem, number int, start, end string, subjects []SubjectArg) []draft.Action {
	var actions []draft.Action
	if number > 0 {
		actions = append(actions, draft.SetSemester(sem, "semesterNumber", strconv.Itoa(number)))
	}
	actions = append(actions,
		draft.SetSemester(sem, "startDate", start),
		draft.SetSemester(sem, "endDate", end),
	)
	for i, arg := range subjects {
		if i > 0 {
			actions = append(actions, draft.AddSubject(sem))
		}
		actions = append(actions, SubjectActions(sem, i, arg)...)
	}
	return actions
}

// SemesterIndex finds the position of the semester with the given number.
func SemesterIndex(doc models.UserDocument, number int) (int, error) {
	for i, s := range doc.Semesters {
		if s.SemesterNumber == number {
			return i, nil
		}
	}
	return -1, fmt.Errorf("semester %d not found", number)
}

// SubjectIndex finds a subject by code, ignoring case and surrounding space.
func SubjectIndex(sem models.Semester, code string) (int, error) {
	want := validation.NormalizeCode(code)
	for i, s := range sem.Subjects {
		if validation.NormalizeCode(s.Code) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("subject %s not found in semester %d", code, sem.SemesterNumber)
}

// Apply reduces the document through actions and saves the result.
func (c *Context) Apply(userID string, doc models.UserDocument, actions ...draft.Action) (models.UserDocument, error) {
	d, err := draft.ReduceAll(draft.New(doc), actions...)
	if err != nil {
		return doc, err
	}
	if err := c.SaveUser(userID, d.Doc); err != nil {
		return doc, err
	}
	return d.Doc, nil
}
