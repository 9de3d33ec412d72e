package cli

import (
	"testing"

	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
)

func TestParseSubjectArg(t *testing.T) {
	tests := []struct {
		in      string
		want    SubjectArg
		wantErr bool
	}{
		{"CS301:Compilers", SubjectArg{Code: "CS301", Name: "Compilers"}, false},
		{"CS301:Compilers:RKM", SubjectArg{Code: "CS301", Name: "Compilers", Faculty: "RKM"}, false},
		{" CS302 : DB Lab : AS : Practical ", SubjectArg{Code: "CS302", Name: "DB Lab", Faculty: "AS", CourseType: "practical"}, false},
		{"CS301", SubjectArg{}, true},
		{"a:b:c:d:e", SubjectArg{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSubjectArg(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSubjectArg(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSubjectArg(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFillSemester(t *testing.T) {
	d := draft.Onboarding()
	d, err := draft.ReduceAll(d, draft.AddSemester())
	if err != nil {
		t.Fatal(err)
	}

	actions := FillSemester(1, 4, "2026-07-01", "2026-11-30", []SubjectArg{
		{Code: "CS401", Name: "Distributed Systems"},
		{Code: "CS402", Name: "Networks Lab", CourseType: "practical"},
	})
	d, err = draft.ReduceAll(d, actions...)
	if err != nil {
		t.Fatalf("ReduceAll() failed: %v", err)
	}

	sem := d.Doc.Semesters[1]
	if sem.SemesterNumber != 4 || sem.StartDate != "2026-07-01" || sem.EndDate != "2026-11-30" {
		t.Errorf("semester fields not set: %+v", sem)
	}
	if len(sem.Subjects) != 2 {
		t.Fatalf("got %d subjects, want 2", len(sem.Subjects))
	}
	if sem.Subjects[0].Code != "CS401" || sem.Subjects[1].CourseType != models.CoursePractical {
		t.Errorf("unexpected subjects: %+v", sem.Subjects)
	}
	if len(sem.Subjects[1].Units) != 5 {
		t.Errorf("added subject should carry the default units")
	}
}

func TestIndexes(t *testing.T) {
	doc := models.UserDocument{Semesters: []models.Semester{
		{SemesterNumber: 2, Subjects: []models.Subject{{Code: "A1"}, {Code: "b2"}}},
		{SemesterNumber: 5},
	}}

	if i, err := SemesterIndex(doc, 5); err != nil || i != 1 {
		t.Errorf("SemesterIndex(5) = %d, %v", i, err)
	}
	if _, err := SemesterIndex(doc, 3); err == nil {
		t.Error("SemesterIndex(3) should fail")
	}
	if i, err := SubjectIndex(doc.Semesters[0], " B2"); err != nil || i != 1 {
		t.Errorf("SubjectIndex(B2) = %d, %v", i, err)
	}
	if _, err := SubjectIndex(doc.Semesters[0], "C3"); err == nil {
		t.Error("SubjectIndex(C3) should fail")
	}
}
