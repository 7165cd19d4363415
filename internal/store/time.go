package store

import (
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width UTC strings so lexical order
// matches chronological order. RFC3339Nano would strip trailing
// fractional zeros and break that ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// formatTimestampWithRelative renders an absolute display form
// ("Jan 2, 2006 at 3:04 PM") plus a coarse human-relative form
// ("2 hours ago").
func formatTimestampWithRelative(t, now time.Time) (string, string) {
	display := t.Local().Format("Jan 2, 2006 at 3:04 PM")
	seconds := now.Sub(t).Seconds()
	if seconds < 0 {
		seconds = 0
	}

	var relative string
	switch {
	case seconds < 60:
		relative = "just now"
	case seconds < 3600:
		relative = plural(int(seconds/60), "minute")
	case seconds < 86400:
		relative = plural(int(seconds/3600), "hour")
	case seconds < 2592000:
		relative = plural(int(seconds/86400), "day")
	case seconds < 31536000:
		relative = plural(int(seconds/2592000), "month")
	default:
		relative = plural(int(seconds/31536000), "year")
	}
	return display, relative
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
