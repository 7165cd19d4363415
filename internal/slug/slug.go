// Package slug maps display names to URL-safe identifiers.
package slug

import "strings"

// Fallback tokens per entity kind, used when a name slugifies to
// nothing (for example a name made entirely of punctuation).
const (
	FallbackProject = "project"
	FallbackFolder  = "folder"
	FallbackArticle = "article"
)

// Make lowercases text, drops everything outside [a-z0-9 -], collapses
// whitespace and hyphen runs into single hyphens and trims
// leading/trailing hyphens. An empty result yields fallback.
func Make(text, fallback string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	lastDash := false
	for _, r := range text {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return fallback
	}
	return s
}
