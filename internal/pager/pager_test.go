package pager

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/metcalfc/folio/internal/book"
)

func testBook() book.ParsedBook {
	para := func(prefix string, n int) string {
		return prefix + strings.Repeat(" word", n)
	}
	return book.ParsedBook{
		Title:  "Test",
		Author: "Anon",
		Chapters: []book.Chapter{
			{Title: "Introduction", Content: para("intro", 5)},
			{Title: "CHAPTER I", Content: para("one", 30) + "\n\n" + para("uno", 30)},
			{Title: "CHAPTER II", Content: para("two", 60) + "\nwrapped line\n\n" + para("dos", 10)},
		},
	}
}

func TestLayout(t *testing.T) {
	b := testBook()
	p := New(b, 24, 6)

	var words []string
	seen := make(map[int]bool)
	for i := 0; i < len(p.pages); i++ {
		pg := p.pages[i]
		if len(pg.Lines) == 0 || len(pg.Lines) > p.Height {
			t.Errorf("page %d has %d lines, height %d", i, len(pg.Lines), p.Height)
		}
		for _, line := range pg.Lines {
			if w := ansi.StringWidth(line); w > p.Width {
				t.Errorf("page %d line %q is %d wide, limit %d", i, line, w, p.Width)
			}
		}
		lines := pg.Lines
		if !seen[pg.Chapter] {
			seen[pg.Chapter] = true
			if pg.Number != 0 || lines[0] != b.Chapters[pg.Chapter].Title {
				t.Errorf("chapter %d does not open with its title: %q", pg.Chapter, lines[0])
			}
			lines = lines[1:]
		} else if lines[0] == "" {
			t.Errorf("page %d starts with a blank line", i)
		}
		for _, line := range lines {
			words = append(words, strings.Fields(line)...)
		}
	}

	var want []string
	for _, ch := range b.Chapters {
		want = append(want, strings.Fields(ch.Content)...)
	}
	if strings.Join(words, " ") != strings.Join(want, " ") {
		t.Errorf("paged words differ from chapter words")
	}
	if len(seen) != len(b.Chapters) {
		t.Errorf("pages cover %d chapters, want %d", len(seen), len(b.Chapters))
	}
}

func TestNavigation(t *testing.T) {
	p := New(testBook(), 24, 6)
	_, total := p.Progress()
	if total < 4 {
		t.Fatalf("expected several pages, got %d", total)
	}

	if p.PrevPage() {
		t.Error("PrevPage() at start should return false")
	}

	count := 1
	for p.NextPage() {
		count++
	}
	if count != total {
		t.Errorf("walked %d pages, Progress reports %d", count, total)
	}
	if !p.AtEnd() {
		t.Error("expected AtEnd after walking all pages")
	}
	if cur, _ := p.Progress(); cur != total {
		t.Errorf("Progress current = %d, want %d", cur, total)
	}
	if p.CurrentChapterTitle() != "CHAPTER II" {
		t.Errorf("CurrentChapterTitle() = %q", p.CurrentChapterTitle())
	}
}

func TestChapterJumps(t *testing.T) {
	p := New(testBook(), 24, 6)

	if !p.NextChapter() || p.CurrentChapter() != 1 || p.Page().Number != 0 {
		t.Fatalf("NextChapter: chapter %d page %d", p.CurrentChapter(), p.Page().Number)
	}
	p.NextPage()
	if !p.PrevChapter() || p.CurrentChapter() != 1 || p.Page().Number != 0 {
		t.Errorf("PrevChapter mid-chapter should return to chapter start, at %+v", p.Position())
	}
	if !p.PrevChapter() || p.CurrentChapter() != 0 {
		t.Errorf("PrevChapter at chapter start should go back, at %+v", p.Position())
	}
	if p.PrevChapter() {
		t.Error("PrevChapter at first page should return false")
	}

	p.JumpToChapter(2)
	if p.CurrentChapter() != 2 {
		t.Errorf("JumpToChapter(2): at chapter %d", p.CurrentChapter())
	}
	if p.NextChapter() {
		t.Error("NextChapter in last chapter should return false")
	}
	p.JumpToChapter(99)
	p.JumpToChapter(-1)
	if p.CurrentChapter() != 2 {
		t.Errorf("out of range jumps moved to chapter %d", p.CurrentChapter())
	}

	p.JumpToPage(-5)
	if cur, _ := p.Progress(); cur != 1 {
		t.Errorf("JumpToPage(-5): page %d", cur)
	}
	p.JumpToPage(1 << 20)
	if !p.AtEnd() {
		t.Error("JumpToPage past the end should clamp to the last page")
	}
}

func TestResizeKeepsChapter(t *testing.T) {
	p := New(testBook(), 24, 6)
	p.JumpToChapter(2)
	p.NextPage()

	p.Resize(60, 20)
	if p.CurrentChapter() != 2 {
		t.Errorf("after growing: chapter %d, want 2", p.CurrentChapter())
	}
	p.Resize(12, 3)
	if p.CurrentChapter() != 2 {
		t.Errorf("after shrinking: chapter %d, want 2", p.CurrentChapter())
	}
	if p.Width != 12 || p.Height != 3 {
		t.Errorf("size = %dx%d", p.Width, p.Height)
	}

	p.Resize(1, 1)
	if p.Width != minWidth || p.Height != minHeight {
		t.Errorf("size not clamped: %dx%d", p.Width, p.Height)
	}
}

func TestPositionRestore(t *testing.T) {
	p := New(testBook(), 24, 6)
	p.JumpToChapter(1)
	p.NextPage()
	pos := p.Position()
	if pos != (Position{Chapter: 1, Page: 1}) {
		t.Fatalf("Position() = %+v", pos)
	}

	q := New(testBook(), 24, 6)
	q.Restore(pos)
	if q.Position() != pos {
		t.Errorf("Restore: at %+v, want %+v", q.Position(), pos)
	}

	q.Restore(Position{Chapter: 2, Page: 1000})
	if q.CurrentChapter() != 2 || q.Page().Number != q.ChapterPages(2)-1 {
		t.Errorf("Restore should clamp page, at %+v", q.Position())
	}
	q.Restore(Position{Chapter: 7})
	if q.CurrentChapter() != 2 {
		t.Errorf("Restore with unknown chapter moved to %+v", q.Position())
	}
}

func TestEmptyBook(t *testing.T) {
	p := New(book.ParsedBook{Title: "Empty"}, 40, 10)
	if cur, total := p.Progress(); cur != 0 || total != 0 {
		t.Errorf("Progress() = %d, %d", cur, total)
	}
	if p.NextPage() || p.PrevPage() || p.NextChapter() || p.PrevChapter() {
		t.Error("navigation should be a no-op without pages")
	}
	if p.CurrentChapterTitle() != "" || len(p.Page().Lines) != 0 {
		t.Errorf("unexpected page %+v", p.Page())
	}
	p.Restore(Position{})
	p.JumpToPage(3)
}

func TestLongTitleWraps(t *testing.T) {
	title := "CHAPTER IV. In which the travellers cross the mountains and lose their way in the snow"
	b := book.ParsedBook{Chapters: []book.Chapter{{Title: title, Content: "Short body."}}}
	p := New(b, 24, 10)

	pg := p.Page()
	var titleWords []string
	for i, line := range pg.Lines {
		if w := ansi.StringWidth(line); w > p.Width {
			t.Errorf("line %d %q is %d wide, limit %d", i, line, w, p.Width)
		}
		if line == "" {
			break
		}
		titleWords = append(titleWords, strings.Fields(line)...)
	}
	if got := strings.Join(titleWords, " "); got != title {
		t.Errorf("title lines = %q, want %q", got, title)
	}
	if last := pg.Lines[len(pg.Lines)-1]; last != "Short body." {
		t.Errorf("last line = %q, want the body", last)
	}
}
