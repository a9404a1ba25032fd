// Package book turns raw Project Gutenberg text into an ordered list of titled
// chapters. Every function in this package is pure: no I/O, no logging and no
// package state beyond compiled patterns, so it is safe to call concurrently.
package book

import "strings"

// Author is a single contributor as supplied by the catalog.
type Author struct {
	Name string `json:"name"`
}

// Metadata describes the book being parsed. It is never modified.
type Metadata struct {
	Title   string   `json:"title"`
	Authors []Author `json:"authors"`
}

// Chapter is a titled slice of the cleaned book text.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ParsedBook is the result of Parse. Treat it as read-only.
type ParsedBook struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Chapters []Chapter `json:"chapters"`
	FullText string    `json:"fullText"`
}

// Parse normalizes raw, strips the Gutenberg boilerplate, segments what is left
// into chapters using DefaultOptions and assembles the result. It never fails:
// missing markers or headings degrade to less structure, not to an error.
func Parse(raw string, meta Metadata) ParsedBook {
	return ParseWithOptions(raw, meta, DefaultOptions())
}

// ParseWithOptions is Parse with explicit segmentation options.
func ParseWithOptions(raw string, meta Metadata, opts Options) ParsedBook {
	cleaned := StripBoilerplate(Normalize(raw))
	seg := Segment(cleaned, opts)
	return Assemble(cleaned, seg.Chapters, meta)
}

// Assemble builds the final book from already segmented text.
func Assemble(cleaned string, chapters []Chapter, meta Metadata) ParsedBook {
	return ParsedBook{
		Title:    meta.Title,
		Author:   JoinAuthors(meta.Authors),
		Chapters: chapters,
		FullText: cleaned,
	}
}

// JoinAuthors joins author names with ", " in their given order.
func JoinAuthors(authors []Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
