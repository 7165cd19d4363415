package store

import (
	"testing"
	"time"
)

func TestFormatTimeRoundTrip(t *testing.T) {
	now := time.Now().UTC()
	got := parseTime(formatTime(now))
	if !got.Equal(now) {
		t.Fatalf("round trip %v != %v", got, now)
	}
}

func TestFormatTimeLexicalOrderMatchesChronological(t *testing.T) {
	base := time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC)
	cases := []struct{ earlier, later time.Time }{
		{base.Add(999999999 * time.Nanosecond), base.Add(time.Second)},
		// Fractions whose variable-width encodings would sort wrong:
		// .1 vs .12, .1 vs .02 etc.
		{base.Add(100 * time.Millisecond), base.Add(120 * time.Millisecond)},
		{base.Add(20 * time.Millisecond), base.Add(100 * time.Millisecond)},
		{base, base.Add(time.Nanosecond)},
	}
	for _, tc := range cases {
		a, b := formatTime(tc.earlier), formatTime(tc.later)
		if a >= b {
			t.Errorf("lexical order broken: %q >= %q", a, b)
		}
		if len(a) != len(b) {
			t.Errorf("encodings differ in width: %q vs %q", a, b)
		}
	}
}

func TestRelativeTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{90 * time.Second, "1 minute ago"},
		{10 * time.Minute, "10 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{60 * 24 * time.Hour, "2 months ago"},
		{400 * 24 * time.Hour, "1 year ago"},
	}
	for _, tc := range cases {
		_, relative := formatTimestampWithRelative(now.Add(-tc.ago), now)
		if relative != tc.want {
			t.Errorf("%v ago: got %q, want %q", tc.ago, relative, tc.want)
		}
	}
}
