// Package reader loads book text from local files and streams.
package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metcalfc/folio/internal/book"
)

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

// MetadataProvider is an optional interface for formats that carry their own
// title and author information.
type MetadataProvider interface {
	Metadata(filename string) (book.Metadata, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Lookup returns the registered format for filename's extension. Unknown
// extensions are read as plain text.
func Lookup(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return &PlainTextFormat{}
}

// ExtractText extracts text from a file, using a registered format or plain text fallback.
func ExtractText(filename string) (string, error) {
	return Lookup(filename).Extract(filename)
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

// Source is loaded book text with whatever metadata came with it.
type Source struct {
	Name   string
	Format string
	Text   string
	Meta   book.Metadata
}

// Open reads filename with its registered format. Metadata comes from the
// container when the format provides it, otherwise from the Gutenberg header.
func Open(filename string) (Source, error) {
	f := Lookup(filename)
	text, err := f.Extract(filename)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", filename, err)
	}
	src := Source{Name: filename, Format: f.Name(), Text: text}
	if err := src.checkText(); err != nil {
		return Source{}, err
	}

	src.Meta = book.ParseHeader(text)
	if mp, ok := f.(MetadataProvider); ok {
		if meta, err := mp.Metadata(filename); err == nil {
			src.Meta = mergeMetadata(meta, src.Meta)
		}
	}
	return src, nil
}

// Read loads plain text from r, such as piped stdin.
func Read(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("read %s: %w", name, err)
	}
	text := Decode(data)
	src := Source{Name: name, Format: plainTextName, Text: text, Meta: book.ParseHeader(text)}
	if err := src.checkText(); err != nil {
		return Source{}, err
	}
	return src, nil
}

func (s Source) checkText() error {
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("%s: %w", s.Name, ErrEmptyText)
	}
	return nil
}

// mergeMetadata fills empty fields of primary from fallback.
func mergeMetadata(primary, fallback book.Metadata) book.Metadata {
	if primary.Title == "" {
		primary.Title = fallback.Title
	}
	if len(primary.Authors) == 0 {
		primary.Authors = fallback.Authors
	}
	return primary
}

const plainTextName = "Plain text"

// PlainTextFormat implements Format for .txt files and anything unrecognized.
type PlainTextFormat struct{}

func init() {
	Register(&PlainTextFormat{})
}

func (f *PlainTextFormat) Name() string         { return plainTextName }
func (f *PlainTextFormat) Extensions() []string { return []string{".txt"} }

func (f *PlainTextFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return Decode(data), nil
}
