package book

import (
	"regexp"
	"strings"
)

var paragraphBreakRegex = regexp.MustCompile(`\n\s*\n`)

// Paragraphs splits the chapter body on blank lines and unwraps the hard line
// breaks inside each paragraph.
func (c Chapter) Paragraphs() []string {
	var out []string
	for _, p := range paragraphBreakRegex.Split(c.Content, -1) {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CharCount returns the number of characters in the chapter body.
func (c Chapter) CharCount() int {
	return charCount(c.Content)
}
