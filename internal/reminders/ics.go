package reminders

import (
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/julianstephens/classlog/internal/constants"
	"github.com/julianstephens/classlog/internal/models"
)

const productID = "-//julianstephens//" + constants.AppName + "//EN"

// WriteICS writes the open reminders as an iCalendar feed: one all-day
// event per reminder on its deadline, with a display alarm reminderPeriod
// days before.
func WriteICS(w io.Writer, list []models.Reminder, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(constants.AppName + " reminders")

	for _, r := range list {
		if r.Completed {
			continue
		}

		event := cal.AddEvent(eventUID(r))
		event.SetDtStampTime(now)
		if !r.CreatedAt.IsZero() {
			event.SetCreatedTime(r.CreatedAt)
		}
		event.SetAllDayStartAt(r.Deadline)
		event.SetAllDayEndAt(r.Deadline.AddDate(0, 0, 1))
		event.SetSummary(r.Name)
		if desc := describe(r); desc != "" {
			event.SetDescription(desc)
		}

		alarm := event.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger(fmt.Sprintf("-P%dD", max(r.ReminderPeriod, 0)))
		alarm.SetProperty(ics.ComponentPropertyDescription, r.Name)
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func eventUID(r models.Reminder) string {
	return r.ID + "@" + constants.AppName
}

func describe(r models.Reminder) string {
	desc := r.Description
	if r.Duration > 0 {
		if desc != "" {
			desc += "\n"
		}
		desc += "Estimated effort: " + strconv.FormatFloat(r.Duration, 'f', -1, 64) + "h"
	}
	return desc
}
