package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripMarkdown(t *testing.T) {
	cases := []struct{ in, want string }{
		{"# Heading\n\nBody text.", "Heading Body text."},
		{"- one\n- two", "one\ntwo"},
		{"> quoted words", "quoted words"},
		{"An ![old map](media/map.png) of the coast.", "An old map of the coast."},
		{"Read [the codex](article:codex) today.", "Read the codex today."},
		{"```\nsecret code\n```\nAfter.", "After."},
		{"Inline `code` stays out.", "Inline  stays out."},
	}
	for _, tc := range cases {
		if got := StripMarkdown(tc.in); got != tc.want {
			t.Errorf("StripMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExcerptWindowsAroundMatch(t *testing.T) {
	text := strings.Repeat("filler ", 30) + "the dragon sleeps" + strings.Repeat(" more", 40)
	got := Excerpt(text, "dragon")
	if !strings.Contains(got, "dragon") {
		t.Fatalf("excerpt lost the match: %q", got)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Fatalf("interior match should be ellipsized on both sides: %q", got)
	}
	if len(got) > excerptWindow+60 {
		t.Fatalf("excerpt too long: %d chars", len(got))
	}
}

func TestExcerptMatchAtStart(t *testing.T) {
	text := "Dragon lore from the first age." + strings.Repeat(" and more", 40)
	got := Excerpt(text, "dragon")
	if strings.HasPrefix(got, "...") {
		t.Fatalf("match at start should not lead with ellipsis: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated tail should end with ellipsis: %q", got)
	}
}

func TestExcerptFallsBackToLeadingText(t *testing.T) {
	short := "A quiet village by the sea."
	if got := Excerpt(short, "dragon"); got != short {
		t.Fatalf("short text without match should pass through, got %q", got)
	}

	long := strings.Repeat("word ", 60)
	got := Excerpt(long, "dragon")
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long fallback should truncate: %q", got)
	}
	if len(got) > excerptWindow+3 {
		t.Fatalf("fallback too long: %d", len(got))
	}
}

func TestExcerptKeepsMultiByteTextValid(t *testing.T) {
	text := strings.Repeat("é", 120) + " dragon " + strings.Repeat("ü", 200)
	got := Excerpt(text, "dragon")
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt is not valid UTF-8: %q", got)
	}
	if !strings.Contains(got, "dragon") {
		t.Fatalf("excerpt lost the match: %q", got)
	}

	// Long fallback path slices runes too.
	got = Excerpt(strings.Repeat("é", 400), "dragon")
	if !utf8.ValidString(got) {
		t.Fatalf("fallback excerpt is not valid UTF-8: %q", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != excerptWindow {
		t.Fatalf("fallback window = %d runes, want %d", n, excerptWindow)
	}
}

func TestExcerptEmptyText(t *testing.T) {
	if got := Excerpt("", "dragon"); got != "" {
		t.Fatalf("empty text: got %q", got)
	}
	if got := Excerpt("```\nonly code\n```", "x"); got != "" {
		t.Fatalf("code-only text: got %q", got)
	}
}
