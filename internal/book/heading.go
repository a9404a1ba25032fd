package book

import (
	"regexp"
	"strings"
)

// Match is one detected heading. Start and End are byte offsets into the
// searched text; the span covers the blank line before the heading and the
// newline after it. Heading is the trimmed heading line.
type Match struct {
	Heading string `json:"heading"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// HeadingMatcher finds chapter headings in cleaned text.
type HeadingMatcher interface {
	Name() string
	FindAll(text string) []Match
}

// Every pattern starts with the blank line that bounds a heading. FindAll
// searches the text with a virtual blank line in front of it so that a
// heading on the very first line is found the same way.
var (
	structuredRegex = regexp.MustCompile(`(?i)\n\n\s*` +
		`(?:CHAPTER|CHAPITRE|PART|PARTIE|LIVRE|BOOK|SCÈNE|ACTE)\s+` +
		`(?:[IVXLCDM0-9A-Z]+|PREMIER|DEUXIÈME|TROISIÈME|QUATRIÈME|CINQUIÈME|SIXIÈME|SEPTIÈME|HUITIÈME|NEUVIÈME|DIXIÈME|UN|DEUX|TROIS)` +
		`.{0,100}(?:\n|$)`)

	romanRegex = regexp.MustCompile(`\n\n\s*[IVXLCDM]+\.?\s*(?:\n|$)`)
)

// StructuredMatcher finds keyword headings such as "CHAPTER IV",
// "Chapitre premier" or "LIVRE DEUXIÈME. La chute", case-insensitively.
type StructuredMatcher struct{}

func (StructuredMatcher) Name() string { return "structured" }

func (StructuredMatcher) FindAll(text string) []Match {
	return findHeadings(structuredRegex, text)
}

// RomanMatcher finds lines holding nothing but an upper-case Roman numeral,
// optionally followed by a period ("XII.").
type RomanMatcher struct{}

func (RomanMatcher) Name() string { return "roman" }

func (RomanMatcher) FindAll(text string) []Match {
	return findHeadings(romanRegex, text)
}

const headingPrefix = "\n\n"

// findHeadings collects successive matches of re. The newlines a match
// consumes after its heading may also be the blank line in front of the next
// heading, so the search resumes before them; Start is clamped so spans never
// overlap.
func findHeadings(re *regexp.Regexp, text string) []Match {
	s := headingPrefix + text
	var matches []Match
	pos, prevEnd := 0, 0
	for pos < len(s) {
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		m := Match{
			Start: max(start-len(headingPrefix), prevEnd),
			End:   end - len(headingPrefix),
		}
		m.Heading = strings.TrimSpace(text[m.Start:m.End])
		matches = append(matches, m)
		prevEnd = m.End

		next := end
		for i := 0; i < len(headingPrefix) && next > start && s[next-1] == '\n'; i++ {
			next--
		}
		if next <= pos {
			next = end
		}
		pos = next
	}
	return matches
}
