package system

import (
	"testing"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/validation"
)

func TestOnboardingAnswers_Actions(t *testing.T) {
	start := draft.Onboarding()
	a := newOnboardingAnswers(start.Doc)

	if a.times[0] != "04:00" {
		t.Fatalf("expected answers prefilled from defaults, got %q", a.times[0])
	}

	a.times[0] = "05:30"
	a.residence = string(models.ResidenceHosteller)
	a.health = true
	a.productive = "Coding, Reading ,"
	a.unproductive = "Scrolling"
	a.semesterNumber = "5"
	a.startDate = "2026-07-01"
	a.endDate = "2026-11-30"
	a.subjects = []cli.SubjectArg{
		{Code: "CS501", Name: "Compilers", Faculty: "RKM", CourseType: "theory"},
		{Code: "CS502", Name: "Compiler Lab", CourseType: "practical"},
	}

	actions, err := a.actions()
	if err != nil {
		t.Fatalf("actions() failed: %v", err)
	}
	d, err := draft.ReduceAll(start, actions...)
	if err != nil {
		t.Fatalf("ReduceAll() failed: %v", err)
	}

	doc := d.Doc
	if doc.WakeUpTime != "05:30" || doc.CollegeStart != "08:00" {
		t.Errorf("schedule not applied: %+v", doc.ScheduleProfile)
	}
	if doc.ResidenceType != models.ResidenceHosteller || !doc.EnableHealthMetrics {
		t.Errorf("residence/health not applied")
	}
	if len(doc.ProductiveActivities) != 2 || doc.ProductiveActivities[1] != "Reading" {
		t.Errorf("ProductiveActivities = %q", doc.ProductiveActivities)
	}
	if len(doc.UnproductiveActivities) != 1 || doc.UnproductiveActivities[0] != "Scrolling" {
		t.Errorf("UnproductiveActivities = %q", doc.UnproductiveActivities)
	}
	if d.Step != draft.LastStep {
		t.Errorf("Step = %d, want %d", d.Step, draft.LastStep)
	}

	if len(doc.Semesters) != 1 {
		t.Fatalf("got %d semesters, want 1", len(doc.Semesters))
	}
	sem := doc.Semesters[0]
	if sem.SemesterNumber != 5 || len(sem.Subjects) != 2 || sem.Subjects[1].CourseType != models.CoursePractical {
		t.Errorf("semester not filled: %+v", sem)
	}

	v := validation.New()
	if res := v.ValidateRoster(doc.Semesters); res.HasConflicts() {
		t.Errorf("onboarded roster should be valid:\n%s", res.FormatReport())
	}
}

func TestOnboardingAnswers_BadSemesterNumber(t *testing.T) {
	a := newOnboardingAnswers(draft.Onboarding().Doc)
	a.semesterNumber = "five"
	if _, err := a.actions(); err == nil {
		t.Error("expected error for non-numeric semester number")
	}
}

func TestFormValidators(t *testing.T) {
	if validateTime("25:00") == nil {
		t.Error("validateTime accepted 25:00")
	}
	if validateTime("") != nil || validateTime("07:00") != nil {
		t.Error("validateTime rejected a valid value")
	}
	if validateDate("2026-13-01") == nil || validateDate("2026-12-01") != nil {
		t.Error("validateDate misclassified")
	}
	if validateSemesterNumber("9") == nil || validateSemesterNumber("8") != nil {
		t.Error("validateSemesterNumber misclassified")
	}
	if required("  ") == nil || required("x") != nil {
		t.Error("required misclassified")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList() = %q", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
