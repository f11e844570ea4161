package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// yearMarkerPattern matches a parenthesised four digit year such as " (2019)".
var yearMarkerPattern = regexp.MustCompile(`\s*\(\d{4}\)`)

// NormalizeTitle maps a raw title to its matching key.
//
// The key is lowercased, has every "(YYYY)" marker removed, keeps only ASCII
// letters, digits and whitespace, and has whitespace runs collapsed to single
// spaces. Blank input yields "". The function is total and idempotent.
func NormalizeTitle(raw string) string {
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	lowered = yearMarkerPattern.ReplaceAllString(lowered, "")

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeTitlePtr normalizes an optional title. A nil title yields "".
func NormalizeTitlePtr(raw *string) string {
	if raw == nil {
		return ""
	}
	return NormalizeTitle(*raw)
}
