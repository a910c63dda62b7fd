package tags

import (
	"regexp"
	"strings"
)

const ellipsis = "..."

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// IsInvalid reports whether text is blank or contains anything tag-like.
func IsInvalid(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	return markupPattern.MatchString(text)
}

// Truncate shortens text to maxLength characters, ending in an ellipsis
// when it had to cut.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	keep := maxLength - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}
