// Package clitest builds command contexts over an in-memory store.
package clitest

import (
	"bytes"
	"testing"
	"time"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/draft"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/memory"
)

const UserID = "test-user"

// Now is the fixed clock of test contexts: a Saturday inside Semester().
var Now = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

// NewContext returns a context with an empty in-memory store whose output
// is captured in the returned buffer.
func NewContext(t testing.TB) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewRepository(memory.NewStore())
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	var out bytes.Buffer
	return &cli.Context{
		Store:  store,
		Out:    &out,
		Now:    func() time.Time { return Now },
		UserID: UserID,
	}, &out
}

// Semester covers Now and holds a theory and a practical subject.
func Semester() models.Semester {
	theory := draft.NewSubject()
	theory.Code, theory.Name, theory.FacultyInitials = "CS501", "Compilers", "RKM"
	lab := draft.NewSubject()
	lab.Code, lab.Name, lab.CourseType = "CS502", "Compiler Lab", models.CoursePractical
	return models.Semester{
		SemesterNumber: 5,
		StartDate:      "2026-07-01",
		EndDate:        "2026-11-30",
		Subjects:       []models.Subject{theory, lab},
	}
}

// Profile is the onboarding default schedule with Semester() and a couple
// of activities.
func Profile() models.UserDocument {
	doc := draft.Onboarding().Doc
	doc.ProductiveActivities = []string{"Coding", "Reading"}
	doc.UnproductiveActivities = []string{"Scrolling"}
	doc.Semesters = []models.Semester{Semester()}
	doc.OnboardingComplete = true
	return doc
}

// NewContextWithProfile is NewContext with Profile() saved for UserID.
func NewContextWithProfile(t testing.TB) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out := NewContext(t)
	if err := ctx.Store.SaveUser(UserID, Profile()); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	return ctx, out
}
