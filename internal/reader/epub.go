package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/metcalfc/folio/internal/book"
	"github.com/taylorskalyo/goreader/epub"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }
func (f *EPUBFormat) Extract(filename string) (string, error) {
	return ExtractTextFromEPUB(filename)
}

// Metadata returns the package title and creator.
func (f *EPUBFormat) Metadata(filename string) (book.Metadata, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return book.Metadata{}, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return book.Metadata{}, ErrNoRootfile
	}

	pkg := rc.Rootfiles[0]
	meta := book.Metadata{Title: strings.TrimSpace(pkg.Title)}
	if creator := strings.TrimSpace(pkg.Creator); creator != "" {
		meta.Authors = []book.Author{{Name: creator}}
	}
	return meta, nil
}

// ExtractTextFromEPUB extracts the text of every spine item in reading order,
// separating items with a blank line.
func ExtractTextFromEPUB(filename string) (string, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return "", ErrNoRootfile
	}

	pkg := rc.Rootfiles[0]
	var sections []string

	for _, ref := range pkg.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		if text := extractTextFromHTML(Decode(data)); text != "" {
			sections = append(sections, text)
		}
	}

	return strings.Join(sections, "\n\n"), nil
}
