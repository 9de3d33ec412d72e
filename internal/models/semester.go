package models

// CourseType classifies a subject; units only matter for theory and tcp.
type CourseType string

const (
	CourseTheory    CourseType = "theory"
	CourseTCP       CourseType = "tcp"
	CoursePractical CourseType = "practical"
)

type Unit struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
}

type Subject struct {
	Code            string     `json:"code" yaml:"code"`
	Name            string     `json:"name" yaml:"name"`
	FacultyInitials string     `json:"facultyInitials" yaml:"facultyInitials"`
	CourseType      CourseType `json:"courseType" yaml:"courseType" validate:"omitempty,oneof=theory tcp practical"`
	Units           []Unit     `json:"units" yaml:"units"`
}

// HasUnits reports whether unit coverage is tracked for the subject.
func (s Subject) HasUnits() bool {
	return s.CourseType != CoursePractical
}

// Semester holds an inclusive calendar-date window (YYYY-MM-DD) and its roster.
type Semester struct {
	SemesterNumber int       `json:"semesterNumber" yaml:"semesterNumber" validate:"min=1,max=8"`
	StartDate      string    `json:"startDate" yaml:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string    `json:"endDate" yaml:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Subjects       []Subject `json:"subjects" yaml:"subjects" validate:"dive"`
}

// Clone returns a deep copy of the semester.
func (s Semester) Clone() Semester {
	out := s
	if s.Subjects != nil {
		out.Subjects = make([]Subject, len(s.Subjects))
		for i, sub := range s.Subjects {
			sub.Units = append([]Unit(nil), sub.Units...)
			out.Subjects[i] = sub
		}
	}
	return out
}

// FindSubject returns the subject with the exact code.
func (s Semester) FindSubject(code string) (Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.Code == code {
			return sub, true
		}
	}
	return Subject{}, false
}

// SubjectCodes returns the roster codes in order.
func (s Semester) SubjectCodes() []string {
	codes := make([]string, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		codes = append(codes, sub.Code)
	}
	return codes
}
