package book

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMinChapterLength is the number of characters a chapter body must
	// exceed to be kept, and that a preamble must exceed to become an
	// introduction.
	DefaultMinChapterLength = 50
	// DefaultMinPrimaryMatches is how many headings a matcher must find to win
	// over the matchers after it.
	DefaultMinPrimaryMatches = 3

	DefaultIntroductionTitle = "Introduction"
	DefaultFallbackTitle     = "Texte Complet"
)

// Options controls Segment. Zero fields take their default.
type Options struct {
	MinChapterLength  int
	MinPrimaryMatches int
	IntroductionTitle string
	FallbackTitle     string
	// Matchers are tried in priority order.
	Matchers []HeadingMatcher
}

// DefaultOptions returns the structured matcher followed by the Roman numeral
// fallback with the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MinChapterLength:  DefaultMinChapterLength,
		MinPrimaryMatches: DefaultMinPrimaryMatches,
		IntroductionTitle: DefaultIntroductionTitle,
		FallbackTitle:     DefaultFallbackTitle,
		Matchers:          []HeadingMatcher{StructuredMatcher{}, RomanMatcher{}},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinChapterLength <= 0 {
		o.MinChapterLength = d.MinChapterLength
	}
	if o.MinPrimaryMatches <= 0 {
		o.MinPrimaryMatches = d.MinPrimaryMatches
	}
	if o.IntroductionTitle == "" {
		o.IntroductionTitle = d.IntroductionTitle
	}
	if o.FallbackTitle == "" {
		o.FallbackTitle = d.FallbackTitle
	}
	if len(o.Matchers) == 0 {
		o.Matchers = d.Matchers
	}
	return o
}

// Segmentation records which matcher produced the chapter boundaries.
// Matcher is empty when no heading was found at all.
type Segmentation struct {
	Matcher  string    `json:"matcher"`
	Matches  []Match   `json:"matches"`
	Chapters []Chapter `json:"chapters"`
}

// Segment splits cleaned text into chapters.
//
// The first matcher that finds at least MinPrimaryMatches headings wins. When
// none does, the lowest priority matcher that found anything is used. Results
// of different matchers are never mixed. Without any heading the whole text is
// returned as a single chapter titled FallbackTitle.
func Segment(text string, opts Options) Segmentation {
	opts = opts.withDefaults()

	name, matches := selectMatches(text, opts)
	seg := Segmentation{Matcher: name, Matches: matches}
	if len(matches) == 0 {
		seg.Chapters = []Chapter{{Title: opts.FallbackTitle, Content: text}}
		return seg
	}

	if first := matches[0].Start; charCount(text[:first]) > opts.MinChapterLength {
		seg.Chapters = append(seg.Chapters, Chapter{
			Title:   opts.IntroductionTitle,
			Content: strings.TrimSpace(text[:first]),
		})
	}

	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		body := strings.TrimSpace(text[m.End:end])
		if charCount(body) <= opts.MinChapterLength {
			continue
		}
		seg.Chapters = append(seg.Chapters, Chapter{Title: m.Heading, Content: body})
	}
	return seg
}

func selectMatches(text string, opts Options) (string, []Match) {
	found := make([][]Match, len(opts.Matchers))
	for i, m := range opts.Matchers {
		found[i] = m.FindAll(text)
		if len(found[i]) >= opts.MinPrimaryMatches {
			return m.Name(), found[i]
		}
	}
	for i := len(found) - 1; i >= 0; i-- {
		if len(found[i]) > 0 {
			return opts.Matchers[i].Name(), found[i]
		}
	}
	return "", nil
}

func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
