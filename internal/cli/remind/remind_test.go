package remind

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/classlog/internal/cli"
	"github.com/julianstephens/classlog/internal/cli/clitest"
	"github.com/julianstephens/classlog/internal/config"
	"github.com/julianstephens/classlog/internal/models"
	"github.com/julianstephens/classlog/internal/storage"
)

func at(month time.Month, day, hour, min int) time.Time {
	return time.Date(2026, month, day, hour, min, 0, 0, time.Local)
}

// seed stores an overdue, a due-today, an upcoming and a completed reminder.
func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	done := at(10, 10, 12, 0)
	for _, r := range []models.Reminder{
		{ID: "aaaa1111", Name: "Essay", Deadline: at(10, 15, 23, 59), ReminderPeriod: 1},
		{ID: "bbbb2222", Name: "Quiz prep", Deadline: at(10, 17, 18, 0), ReminderPeriod: 0},
		{ID: "cccc3333", Name: "Project demo", Deadline: at(10, 30, 10, 0), ReminderPeriod: 1, Description: "Bring the laptop"},
		{ID: "dddd4444", Name: "Fee payment", Deadline: at(10, 12, 17, 0), Completed: true, CompletedAt: &done},
	} {
		r.UserID = clitest.UserID
		if _, err := ctx.Store.AddReminder(r); err != nil {
			t.Fatalf("failed to add reminder: %v", err)
		}
	}
}

func TestAddCmd(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		want     time.Time
	}{
		{"date only", "2026-10-19", at(10, 19, 23, 59)},
		{"date and time", "2026-10-18 14:00", at(10, 18, 14, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := clitest.NewContext(t)
			cmd := &AddCmd{Name: "Lab record", Deadline: tt.deadline, Period: 2, Duration: 1.5}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("add failed: %v", err)
			}
			list, err := ctx.Store.ListReminders(clitest.UserID)
			if err != nil || len(list) != 1 {
				t.Fatalf("expected one reminder, got %v (%v)", list, err)
			}
			r := list[0]
			if !r.Deadline.Equal(tt.want) || r.ReminderPeriod != 2 || r.Duration != 1.5 {
				t.Errorf("unexpected reminder: %+v", r)
			}
			if !r.CreatedAt.Equal(clitest.Now) {
				t.Errorf("expected CreatedAt %v, got %v", clitest.Now, r.CreatedAt)
			}
			if !strings.Contains(out.String(), "Added reminder Lab record") || !strings.Contains(out.String(), "from now") {
				t.Errorf("unexpected output: %s", out.String())
			}
		})
	}
}

func TestAddCmd_Invalid(t *testing.T) {
	for _, cmd := range []AddCmd{
		{Name: "x", Deadline: "next week"},
		{Name: "  ", Deadline: "2026-10-19"},
		{Name: "x", Deadline: "2026-10-19", Period: -1},
	} {
		ctx, _ := clitest.NewContext(t)
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("expected an error for %+v", cmd)
		}
	}
}

func TestListCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	seed(t, ctx)

	if err := (&ListCmd{Filter: "active"}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "3 active · 1 completed") {
		t.Errorf("missing counts:\n%s", got)
	}
	if strings.Contains(got, "Fee payment") {
		t.Errorf("completed reminder listed as active:\n%s", got)
	}
	essay, quiz, demo := strings.Index(got, "Essay"), strings.Index(got, "Quiz prep"), strings.Index(got, "Project demo")
	if essay < 0 || quiz < essay || demo < quiz {
		t.Errorf("expected deadline order:\n%s", got)
	}
	for _, want := range []string{"❌ aaaa1111", "⚠ bbbb2222", "Bring the laptop"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	out.Reset()
	if err := (&ListCmd{Filter: "completed"}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ dddd4444  Fee payment") || strings.Contains(out.String(), "Essay") {
		t.Errorf("unexpected completed list:\n%s", out.String())
	}

	if err := (&ListCmd{Filter: "soon"}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown filter")
	}
}

func TestDoneCmd_Toggles(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	seed(t, ctx)

	if err := (&DoneCmd{ID: "bbbb"}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	r, err := ctx.Store.GetReminder("bbbb2222")
	if err != nil {
		t.Fatalf("failed to load reminder: %v", err)
	}
	if !r.Completed || r.CompletedAt == nil || !r.CompletedAt.Equal(clitest.Now) {
		t.Errorf("expected completion stamped at now: %+v", r)
	}
	if !strings.Contains(out.String(), "✓ Completed Quiz prep") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := (&DoneCmd{ID: "bbbb2222"}).Run(ctx); err != nil {
		t.Fatalf("second done failed: %v", err)
	}
	r, _ = ctx.Store.GetReminder("bbbb2222")
	if r.Completed || r.CompletedAt != nil {
		t.Errorf("expected reminder reopened: %+v", r)
	}
}

func TestFindReminder(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	for _, id := range []string{"abc1", "abc2"} {
		if _, err := ctx.Store.AddReminder(models.Reminder{ID: id, UserID: clitest.UserID, Name: id}); err != nil {
			t.Fatalf("failed to add reminder: %v", err)
		}
	}

	tests := []struct {
		ref     string
		want    string
		wantErr string
	}{
		{"abc1", "abc1", ""},
		{"abc", "", "matches 2"},
		{"zzz", "", "no reminder"},
		{"", "", "cannot be empty"},
	}
	for _, tt := range tests {
		r, err := findReminder(ctx, tt.ref)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("findReminder(%q) error = %v, want %q", tt.ref, err, tt.wantErr)
			}
			continue
		}
		if err != nil || r.ID != tt.want {
			t.Errorf("findReminder(%q) = %q, %v", tt.ref, r.ID, err)
		}
	}
}

func TestDeleteCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	seed(t, ctx)

	if err := (&DeleteCmd{ID: "cccc"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetReminder("cccc3333"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected reminder gone, got %v", err)
	}
	if !strings.Contains(out.String(), "Deleted Project demo") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestExportCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	seed(t, ctx)
	path := filepath.Join(t.TempDir(), "reminders.ics")

	if err := (&ExportCmd{Output: path}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read calendar: %v", err)
	}
	cal := string(data)
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Essay", "SUMMARY:Project demo", "TRIGGER:-P1D"} {
		if !strings.Contains(cal, want) {
			t.Errorf("calendar missing %q", want)
		}
	}
	if strings.Contains(cal, "Fee payment") {
		t.Error("completed reminders should not be exported")
	}
	if !strings.Contains(out.String(), "Exported 3 open reminder(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("export to stdout failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "BEGIN:VCALENDAR") {
		t.Errorf("expected the calendar on the output writer, got %q", out.String())
	}
}

type fakeNotifier struct {
	sent []models.Reminder
	err  error
}

func (f *fakeNotifier) NotifyReminders(list []models.Reminder, now time.Time) (int, error) {
	if f.err != nil {
		return 1, f.err
	}
	f.sent = append(f.sent, list...)
	return len(list), nil
}

func useNotifier(t *testing.T, f *fakeNotifier) {
	t.Helper()
	prev := newNotifier
	newNotifier = func() reminderNotifier { return f }
	t.Cleanup(func() { newNotifier = prev })
}

func TestNotifyCmd(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		seed(t, ctx)
		if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
		got := out.String()
		if !strings.Contains(got, "Overdue: Essay") || !strings.Contains(got, "Due today: Quiz prep") {
			t.Errorf("unexpected dry run output:\n%s", got)
		}
		if strings.Contains(got, "Project demo") {
			t.Errorf("reminder outside its alert period was notified:\n%s", got)
		}
	})

	t.Run("sends due reminders", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		seed(t, ctx)
		fake := &fakeNotifier{}
		useNotifier(t, fake)
		if err := (&NotifyCmd{}).Run(ctx); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
		if len(fake.sent) != 2 || fake.sent[0].ID != "aaaa1111" {
			t.Errorf("unexpected notifications: %+v", fake.sent)
		}
		if !strings.Contains(out.String(), "✓ Sent 2 notification(s)") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})

	t.Run("notifier failure", func(t *testing.T) {
		ctx, _ := clitest.NewContext(t)
		seed(t, ctx)
		useNotifier(t, &fakeNotifier{err: errors.New("tray gone")})
		err := (&NotifyCmd{}).Run(ctx)
		if err == nil || !strings.Contains(err.Error(), "sent 1 of 2") {
			t.Errorf("expected partial send error, got %v", err)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		ctx.Config = &config.Config{NotificationsEnabled: false}
		seed(t, ctx)
		fake := &fakeNotifier{}
		useNotifier(t, fake)
		if err := (&NotifyCmd{}).Run(ctx); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
		if len(fake.sent) != 0 || !strings.Contains(out.String(), "Notifications are disabled") {
			t.Errorf("disabled notifications should not send: %s", out.String())
		}
	})

	t.Run("nothing due", func(t *testing.T) {
		ctx, out := clitest.NewContext(t)
		if err := (&NotifyCmd{}).Run(ctx); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
		if !strings.Contains(out.String(), "No reminders are due") {
			t.Errorf("unexpected output: %s", out.String())
		}
	})
}
