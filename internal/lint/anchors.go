package lint

import (
	"strings"
	"unicode"
)

// Slug converts heading text to its GitHub-style anchor: lowercase, spaces
// become hyphens, and everything that is not a letter, digit, hyphen or
// underscore is dropped. Duplicate handling (the -1, -2 suffixes) is the
// caller's job since it needs document scope.
func Slug(text string) string {
	var sb strings.Builder
	for _, r := range strings.TrimSpace(text) {
		switch {
		case r == ' ' || r == '\t':
			sb.WriteByte('-')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}
