package textutil

import "strings"

// SanitizeToken converts a label to a lowercase filesystem-safe token.
// Letters are lowercased, digits and hyphens/underscores are kept, every other
// run of characters becomes a single underscore. Returns "unknown" for input
// that leaves nothing behind, so "Disney+" becomes "disney" and "Golden Globe"
// becomes "golden_globe".
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
