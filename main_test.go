package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/metcalfc/folio/internal/book"
	"github.com/metcalfc/folio/internal/reader"
)

const sampleBook = `The Project Gutenberg eBook of Sample Tales

Title: Sample Tales

Author: Jane Roe

*** START OF THE PROJECT GUTENBERG EBOOK SAMPLE TALES ***

A short preface that easily runs past the fifty character introduction threshold.

CHAPTER I

It was a bright cold day in April, and the clocks were striking thirteen in the town.

CHAPTER II

The second chapter begins here with enough words to be kept as a real chapter body.

CHAPTER III

The third chapter closes the story with yet another sentence of reasonable length.

*** END OF THE PROJECT GUTENBERG EBOOK SAMPLE TALES ***
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func exportJSON(t *testing.T, stdin string, args ...string) book.ParsedBook {
	t.Helper()
	out, stderr, err := execute(t, stdin, append([]string{"export", "--format", "json"}, args...)...)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, stderr)
	}
	var b book.ParsedBook
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	return b
}

func chapterTitles(b book.ParsedBook) []string {
	var out []string
	for _, ch := range b.Chapters {
		out = append(out, ch.Title)
	}
	return out
}

func TestTOCCommand(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)

	out, _, err := execute(t, "", "toc", path)
	if err != nil {
		t.Fatalf("toc failed: %v", err)
	}

	for _, want := range []string{
		"Sample Tales by Jane Roe",
		"structured (3 headings)",
		"Introduction",
		"CHAPTER I",
		"CHAPTER III",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("toc output missing %q:\n%s", want, out)
		}
	}
}

func TestExportJSON(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)
	b := exportJSON(t, "", path)

	if b.Title != "Sample Tales" {
		t.Errorf("Title = %q, want %q", b.Title, "Sample Tales")
	}
	if b.Author != "Jane Roe" {
		t.Errorf("Author = %q, want %q", b.Author, "Jane Roe")
	}

	want := []string{"Introduction", "CHAPTER I", "CHAPTER II", "CHAPTER III"}
	got := chapterTitles(b)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("chapters = %q, want %q", got, want)
	}

	if strings.Contains(b.FullText, "PROJECT GUTENBERG") {
		t.Errorf("FullText still carries the boilerplate markers")
	}
	if !strings.HasPrefix(b.FullText, "A short preface") {
		t.Errorf("FullText = %q, want it to start at the preface", b.FullText[:20])
	}
}

func TestExportMetadataFlags(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)
	b := exportJSON(t, "", "--title", "Other Tales", "--author", "Ann", "--author", "Bob", path)

	if b.Title != "Other Tales" {
		t.Errorf("Title = %q, want %q", b.Title, "Other Tales")
	}
	if b.Author != "Ann, Bob" {
		t.Errorf("Author = %q, want %q", b.Author, "Ann, Bob")
	}
}

func TestExportTitleFromFileName(t *testing.T) {
	path := writeFile(t, "my-book.txt", "Just a few words of text without any header at all, long enough to read.")
	b := exportJSON(t, "", path)

	if b.Title != "my-book" {
		t.Errorf("Title = %q, want %q", b.Title, "my-book")
	}
	if b.Author != "" {
		t.Errorf("Author = %q, want empty", b.Author)
	}
}

func TestExportStdin(t *testing.T) {
	b := exportJSON(t, sampleBook)

	if b.Title != "Sample Tales" {
		t.Errorf("Title = %q, want %q", b.Title, "Sample Tales")
	}
	if len(b.Chapters) != 4 {
		t.Errorf("got %d chapters, want 4", len(b.Chapters))
	}
}

func TestExportWithoutHeadings(t *testing.T) {
	path := writeFile(t, "plain.txt", "One long paragraph with no chapter headings anywhere in it.\n\nAnd a second one.")

	out, stderr, err := execute(t, "", "export", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	var b book.ParsedBook
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode export: %v", err)
	}

	if len(b.Chapters) != 1 || b.Chapters[0].Title != book.DefaultFallbackTitle {
		t.Errorf("chapters = %q, want a single %q", chapterTitles(b), book.DefaultFallbackTitle)
	}
	if !strings.Contains(stderr, "no chapter headings found") {
		t.Errorf("expected a warning on stderr, got %q", stderr)
	}
}

func TestExportMinLength(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)
	b := exportJSON(t, "", "--min-length", "1000", path)

	if len(b.Chapters) != 0 {
		t.Errorf("chapters = %q, want none above 1000 characters", chapterTitles(b))
	}
}

func TestExportText(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)

	out, _, err := execute(t, "", "export", "--format", "text", "--width", "30", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if !strings.HasPrefix(out, "Sample Tales\nJane Roe\n") {
		t.Errorf("text export should open with title and author, got %q", out[:30])
	}
	if got := strings.Count(out, "\f"); got != 4 {
		t.Errorf("got %d form feeds, want one per chapter (4)", got)
	}
	for _, line := range strings.Split(out, "\n") {
		if n := utf8.RuneCountInString(line); n > 30 {
			t.Errorf("line %q is %d columns, want at most 30", line, n)
		}
	}
	if !strings.Contains(out, "\f\nCHAPTER II\n\nThe second chapter") {
		t.Errorf("chapter layout not as expected:\n%s", out)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)

	_, _, err := execute(t, "", "export", "--format", "yaml", path)
	if err == nil || !strings.Contains(err.Error(), "unknown export format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "toc", filepath.Join(t.TempDir(), "nope.txt"))
		if err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("empty stdin", func(t *testing.T) {
		_, _, err := execute(t, "  \n\n ", "toc")
		if !errors.Is(err, reader.ErrEmptyText) {
			t.Errorf("expected ErrEmptyText, got %v", err)
		}
	})

	t.Run("too many args", func(t *testing.T) {
		_, _, err := execute(t, "", "toc", "a.txt", "b.txt")
		if err == nil {
			t.Error("expected an error for two files")
		}
	})
}

func TestDebugLogging(t *testing.T) {
	path := writeFile(t, "sample.txt", sampleBook)

	_, stderr, err := execute(t, "", "--debug", "toc", path)
	if err != nil {
		t.Fatalf("toc failed: %v", err)
	}
	if !strings.Contains(stderr, "matcher=structured") {
		t.Errorf("debug log missing matcher, got %q", stderr)
	}

	_, stderr, err = execute(t, "", "toc", path)
	if err != nil {
		t.Fatalf("toc failed: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no log output without --debug, got %q", stderr)
	}
}
