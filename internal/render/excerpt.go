package render

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	orderedRe    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	quoteRe      = regexp.MustCompile(`(?m)^>\s+`)
	hruleRe      = regexp.MustCompile(`(?m)^---+$`)
	imageRe      = regexp.MustCompile(`!\[([^\]]*)\]\([^\)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)
	blankRunRe   = regexp.MustCompile(`\n\s*\n+`)
)

// StripMarkdown reduces markdown to its visible text: code is dropped,
// structural markers are removed, images collapse to their alt text
// and links to their label.
func StripMarkdown(markdownText string) string {
	text := codeFenceRe.ReplaceAllString(markdownText, "")
	text = inlineCodeRe.ReplaceAllString(text, "")
	text = headerRe.ReplaceAllString(text, "")
	text = bulletRe.ReplaceAllString(text, "")
	text = orderedRe.ReplaceAllString(text, "")
	text = quoteRe.ReplaceAllString(text, "")
	text = hruleRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = blankRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

const excerptWindow = 150

// Excerpt extracts a plain-text excerpt for search results: a window
// around the first case-insensitive occurrence of query, with
// ellipses when truncated, or the leading excerptWindow characters
// when the query does not appear in the stripped text. Offsets are
// counted in runes so a window edge cannot split a multi-byte
// character.
func Excerpt(markdownText, query string) string {
	text := StripMarkdown(markdownText)
	if text == "" {
		return ""
	}
	runes := []rune(text)

	if query != "" {
		bytePos := strings.Index(strings.ToLower(text), strings.ToLower(query))
		if bytePos >= 0 {
			pos := utf8.RuneCountInString(text[:bytePos])
			start := pos - 50
			if start < 0 {
				start = 0
			}
			end := pos + excerptWindow
			if end > len(runes) {
				end = len(runes)
			}
			excerpt := strings.TrimSpace(string(runes[start:end]))
			if start > 0 {
				excerpt = "..." + excerpt
			}
			if end < len(runes) {
				excerpt = excerpt + "..."
			}
			return excerpt
		}
	}

	if len(runes) > excerptWindow {
		return strings.TrimSpace(string(runes[:excerptWindow])) + "..."
	}
	return text
}
