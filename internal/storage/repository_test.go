package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
	"github.com/julianstephens/classlog/internal/storage/memory"
	"github.com/julianstephens/classlog/internal/validation"
)

func setupRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo := storage.NewRepository(memory.NewStore())
	if err := repo.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return repo
}

func day(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return d
}

func TestUserRoundTrip(t *testing.T) {
	repo := setupRepo(t)

	if _, err := repo.GetUser("u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetUser() on empty store error = %v, want ErrNotFound", err)
	}

	doc := models.UserDocument{
		ScheduleProfile: models.ScheduleProfile{WakeUpTime: "05:00", ResidenceType: models.ResidenceHosteller},
		Semesters: []models.Semester{{
			SemesterNumber: 3,
			StartDate:      "2026-07-01",
			EndDate:        "2026-11-30",
			Subjects:       []models.Subject{{Code: "CS301", Name: "Compilers", CourseType: models.CourseTheory}},
		}},
		OnboardingComplete: true,
	}
	if err := repo.SaveUser("u1", doc); err != nil {
		t.Fatalf("SaveUser() failed: %v", err)
	}

	got, err := repo.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if got.WakeUpTime != "05:00" || !got.OnboardingComplete || len(got.Semesters) != 1 {
		t.Errorf("unexpected user document: %+v", got)
	}
	if got.Semesters[0].Subjects[0].Code != "CS301" {
		t.Errorf("subject not preserved: %+v", got.Semesters[0].Subjects)
	}
}

func TestSaveUserRefusesInvalidRoster(t *testing.T) {
	repo := setupRepo(t)

	doc := models.UserDocument{Semesters: []models.Semester{{
		SemesterNumber: 1,
		Subjects: []models.Subject{
			{Code: "uit101 ", Name: "Networks"},
			{Code: "UIT101", Name: "Networks Lab"},
		},
	}}}

	err := repo.SaveUser("u1", doc)
	if !errors.Is(err, validation.ErrRosterInvalid) {
		t.Fatalf("SaveUser() error = %v, want ErrRosterInvalid", err)
	}
	if _, err := repo.GetUser("u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Error("invalid roster must not be persisted")
	}
}

func TestDailyEntries(t *testing.T) {
	repo := setupRepo(t)

	entries := []models.DailyEntry{
		{UserID: "u1", Date: day("2026-10-15"), DayType: models.DayCollege,
			Hours: []models.HourRecord{{Time: "08:00", Subject: "CS301", Unit: 2, Attendance: models.AttendancePresent}}},
		{UserID: "u1", Date: day("2026-10-16"), DayType: models.DayNonCollege,
			Hours: []models.HourRecord{{Time: "09:00", Activity: "Reading", ProductivityLevel: 5}}},
		{UserID: "u2", Date: day("2026-10-16"), DayType: models.DayNonCollege},
	}
	for _, e := range entries {
		if err := repo.SaveDailyEntry(e); err != nil {
			t.Fatalf("SaveDailyEntry() failed: %v", err)
		}
	}

	got, err := repo.GetDailyEntry("u1", "2026-10-15")
	if err != nil {
		t.Fatalf("GetDailyEntry() failed: %v", err)
	}
	if h, ok := got.Hour("08:00"); !ok || h.Unit != 2 || h.Attendance != models.AttendancePresent {
		t.Errorf("hour record not preserved: %+v", got.Hours)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped on save")
	}

	list, err := repo.ListDailyEntries("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("ListDailyEntries(u1) returned %d entries, want 2", len(list))
	}

	// whole-document overwrite
	overwrite := entries[0]
	overwrite.Hours = nil
	overwrite.DailyReflection = "rewritten"
	if err := repo.SaveDailyEntry(overwrite); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.GetDailyEntry("u1", "2026-10-15")
	if len(got.Hours) != 0 || got.DailyReflection != "rewritten" {
		t.Errorf("save should replace the whole entry, got %+v", got)
	}

	if err := repo.SaveDailyEntry(models.DailyEntry{Date: day("2026-10-15")}); err == nil {
		t.Error("entry without user id should be rejected")
	}
}

func TestHealthMetrics(t *testing.T) {
	repo := setupRepo(t)

	m := models.HealthMetricEntry{UserID: "u1", Date: day("2026-10-16"), MorningWeight: 61.5, Steps: 9000}
	if err := repo.SaveHealthMetric(m); err != nil {
		t.Fatalf("SaveHealthMetric() failed: %v", err)
	}
	got, err := repo.GetHealthMetric("u1", "2026-10-16")
	if err != nil {
		t.Fatal(err)
	}
	if got.MorningWeight != 61.5 || got.Steps != 9000 {
		t.Errorf("unexpected metric: %+v", got)
	}

	list, err := repo.ListHealthMetrics("u1")
	if err != nil || len(list) != 1 {
		t.Errorf("ListHealthMetrics() = %d, %v", len(list), err)
	}
}

func TestReminders(t *testing.T) {
	repo := setupRepo(t)

	added, err := repo.AddReminder(models.Reminder{
		UserID:         "u1",
		Name:           "Lab record",
		Deadline:       day("2026-10-20"),
		ReminderPeriod: 2,
	})
	if err != nil {
		t.Fatalf("AddReminder() failed: %v", err)
	}
	if added.ID == "" || added.CreatedAt.IsZero() {
		t.Fatalf("AddReminder() should assign id and createdAt: %+v", added)
	}

	got, err := repo.GetReminder(added.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != added.ID || got.Name != "Lab record" {
		t.Errorf("GetReminder() = %+v", got)
	}

	got.Completed = true
	if err := repo.UpdateReminder(got); err != nil {
		t.Fatalf("UpdateReminder() failed: %v", err)
	}
	got, _ = repo.GetReminder(added.ID)
	if !got.Completed || got.UpdatedAt == nil {
		t.Errorf("update not applied: %+v", got)
	}

	if err := repo.UpdateReminder(models.Reminder{ID: "missing", UserID: "u1"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateReminder(missing) error = %v, want ErrNotFound", err)
	}

	list, err := repo.ListReminders("u1")
	if err != nil || len(list) != 1 || list[0].ID != added.ID {
		t.Errorf("ListReminders() = %+v, %v", list, err)
	}

	if err := repo.DeleteReminder(added.ID); err != nil {
		t.Fatalf("DeleteReminder() failed: %v", err)
	}
	if err := repo.DeleteReminder(added.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteReminder() error = %v, want ErrNotFound", err)
	}
}

func TestListSkipsUnreadableDocuments(t *testing.T) {
	docs := memory.NewStore()
	repo := storage.NewRepository(docs)

	if err := docs.PutDocument(storage.Document{
		Collection: storage.CollectionDailyEntries,
		ID:         "u1_bad",
		UserID:     "u1",
		Body:       []byte("{not json"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveDailyEntry(models.DailyEntry{UserID: "u1", Date: day("2026-10-16")}); err != nil {
		t.Fatal(err)
	}

	list, err := repo.ListDailyEntries("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("expected the readable entry only, got %d", len(list))
	}
}
