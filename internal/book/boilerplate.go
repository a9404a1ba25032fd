package book

import (
	"regexp"
	"strings"
)

var (
	// *** START OF THE PROJECT GUTENBERG EBOOK LES MISÉRABLES ***
	startMarkerRegex = regexp.MustCompile(`(?i)\*\*\* ?START OF (?:THE|THIS) PROJECT GUTENBERG EBOOK .* \*\*\*`)
	// *** END OF THE PROJECT GUTENBERG EBOOK LES MISÉRABLES ***
	endMarkerRegex = regexp.MustCompile(`(?i)\*\*\* ?END OF (?:THE|THIS) PROJECT GUTENBERG EBOOK .* \*\*\*`)
)

// StripBoilerplate removes the Project Gutenberg license header and footer.
// Everything up to and including the START marker and everything from the END
// marker on is dropped. A missing marker leaves that side untouched. The result
// is trimmed.
func StripBoilerplate(s string) string {
	if loc := startMarkerRegex.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	if loc := endMarkerRegex.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.TrimSpace(s)
}
