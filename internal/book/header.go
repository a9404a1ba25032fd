package book

import (
	"regexp"
	"strings"
)

var (
	headerFieldRegex = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):\s*(.*)$`)
	authorSepRegex   = regexp.MustCompile(`\s*;\s*|\s+and\s+`)
)

// ParseHeader reads the Title and Author fields Project Gutenberg puts in the
// front matter before the START marker. Values may continue on indented lines.
// Text without a START marker yields an empty Metadata.
func ParseHeader(raw string) Metadata {
	s := Normalize(raw)
	loc := startMarkerRegex.FindStringIndex(s)
	if loc == nil {
		return Metadata{}
	}

	fields := make(map[string]string)
	var current string
	for _, line := range strings.Split(s[:loc[0]], "\n") {
		if m := headerFieldRegex.FindStringSubmatch(line); m != nil {
			current = strings.ToLower(strings.TrimSpace(m[1]))
			if _, seen := fields[current]; seen {
				current = ""
				continue
			}
			fields[current] = strings.TrimSpace(m[2])
			continue
		}
		trimmed := strings.TrimSpace(line)
		if current != "" && trimmed != "" && (line[0] == ' ' || line[0] == '\t') {
			fields[current] = strings.TrimSpace(fields[current] + " " + trimmed)
			continue
		}
		current = ""
	}

	meta := Metadata{Title: fields["title"]}
	if v := fields["author"]; v != "" {
		for _, name := range authorSepRegex.Split(v, -1) {
			if name = strings.TrimSpace(name); name != "" {
				meta.Authors = append(meta.Authors, Author{Name: name})
			}
		}
	}
	return meta
}
