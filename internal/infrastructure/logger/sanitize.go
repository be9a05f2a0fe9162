package logger

import (
	"fmt"
	"strings"
	"unicode"
)

var shortEscapes = map[rune]string{
	'\n':   `\n`,
	'\r':   `\r`,
	'\t':   `\t`,
	'\x00': `\x00`,
}

// SanitizeForLog escapes control characters in client-supplied values (file
// names, paths, job IDs) so they cannot forge log lines or drive the terminal.
// Printable Unicode is kept as is.
func SanitizeForLog(s string) string {
	if strings.IndexFunc(s, unicode.IsControl) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if esc, ok := shortEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if unicode.IsControl(r) {
			fmt.Fprintf(&b, `\x%02x`, r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
