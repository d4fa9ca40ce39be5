package domain

import (
	"regexp"
	"strings"
)

const maxSlugLength = 50

var (
	invalidSlugChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
)

// Slugify converts a note title into a safe, deterministic filename stem.
// Invalid filesystem characters are stripped, runs of whitespace become a
// single hyphen, and the result is capped at 50 characters. A title that
// reduces to nothing yields "untitled".
func Slugify(title string) string {
	s := invalidSlugChars.ReplaceAllString(title, "")
	s = slugWhitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-.")
	if runes := []rune(s); len(runes) > maxSlugLength {
		s = strings.Trim(string(runes[:maxSlugLength]), "-.")
	}
	if s == "" {
		return "untitled"
	}
	return s
}
