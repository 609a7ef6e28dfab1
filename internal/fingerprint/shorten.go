package fingerprint

import (
	"strings"
	"unicode/utf8"
)

const placeholder = " [...]"

// Shorten collapses whitespace in s and, if the result is longer than width
// characters, drops whole trailing words until it fits together with a
// " [...]" marker.
func Shorten(s string, width int) string {
	words := strings.Fields(s)
	text := strings.Join(words, " ")
	if utf8.RuneCountInString(text) <= width {
		return text
	}

	budget := width - utf8.RuneCountInString(placeholder)
	var b strings.Builder
	n := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		sep := 0
		if n > 0 {
			sep = 1
		}
		if n+sep+wl > budget {
			break
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		n += sep + wl
	}
	if n == 0 {
		return strings.TrimLeft(placeholder, " ")
	}
	return b.String() + placeholder
}
