package book

import (
	"regexp"
	"strings"
)

var blankRunRegex = regexp.MustCompile(`\n{3,}`)

// Normalize converts CRLF and lone CR line endings to LF and collapses runs of
// three or more newlines to a single blank line. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return blankRunRegex.ReplaceAllString(s, "\n\n")
}
