package reader

import (
	"os"
	"regexp"
)

// MarkdownFormat implements Format for Markdown files.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

// headerRegex matches markdown headers (# to ######), with optional closing hashes.
var headerRegex = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.*?)[ \t]*#*[ \t]*$`)

// Extract returns the file with header markers removed, so "# Chapter 1"
// reads as a plain "Chapter 1" heading line.
func (f *MarkdownFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return headerRegex.ReplaceAllString(Decode(data), "$1"), nil
}
