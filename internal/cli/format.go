package cli

import (
	"time"

	"github.com/dustin/go-humanize"
)

// DeadlineText renders a deadline with its distance from now, e.g.
// "Mon 19 Oct 23:59, 2 days from now".
func DeadlineText(deadline, now time.Time) string {
	return deadline.Format("Mon 02 Jan 15:04") + ", " + humanize.RelTime(deadline, now, "ago", "from now")
}
