package textutil

import "strings"

// SanitizeNameComponent strips a person-name component down to characters
// safe for filenames: letters, digits, space, hyphen, underscore. Everything
// else is dropped and surrounding whitespace trimmed.
func SanitizeNameComponent(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
