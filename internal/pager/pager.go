// Package pager lays a parsed book out as fixed-size pages of text and keeps
// track of the reading position.
package pager

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/metcalfc/folio/internal/book"
)

const (
	minWidth  = 10
	minHeight = 2
)

// Page is one screenful of wrapped lines from a single chapter.
type Page struct {
	Chapter int
	Number  int // page number within the chapter, from 0
	Lines   []string
}

// Position identifies a page independently of the page size.
type Position struct {
	Chapter int `json:"chapter"`
	Page    int `json:"page"`
}

// Pager holds the layout of a book and the current page.
type Pager struct {
	Book   book.ParsedBook
	Width  int
	Height int

	pages         []Page
	chapterStarts []int
	current       int
}

// New lays out b for a page of width columns and height lines.
func New(b book.ParsedBook, width, height int) *Pager {
	p := &Pager{Book: b}
	p.setSize(width, height)
	p.layout()
	return p
}

func (p *Pager) setSize(width, height int) {
	p.Width = max(width, minWidth)
	p.Height = max(height, minHeight)
}

// Resize re-flows the book for a new page size, staying in the same chapter
// at roughly the same place.
func (p *Pager) Resize(width, height int) {
	if max(width, minWidth) == p.Width && max(height, minHeight) == p.Height {
		return
	}
	ch, frac := p.CurrentChapter(), 0.0
	if n := p.ChapterPages(ch); n > 0 {
		frac = float64(p.Page().Number) / float64(n)
	}
	p.setSize(width, height)
	p.layout()
	if len(p.chapterStarts) > 0 {
		p.JumpToPage(p.chapterStarts[ch] + int(frac*float64(p.ChapterPages(ch))))
	}
}

func (p *Pager) layout() {
	p.pages = p.pages[:0]
	p.chapterStarts = p.chapterStarts[:0]
	for i, ch := range p.Book.Chapters {
		p.chapterStarts = append(p.chapterStarts, len(p.pages))
		lines := append(p.wrap(ch.Title), "")
		lines = append(lines, p.wrapChapter(ch)...)
		for n := 0; len(lines) > 0; n++ {
			take := min(p.Height, len(lines))
			p.pages = append(p.pages, Page{Chapter: i, Number: n, Lines: lines[:take]})
			lines = lines[take:]
			for len(lines) > 0 && lines[0] == "" {
				lines = lines[1:]
			}
		}
	}
	p.current = min(p.current, max(len(p.pages)-1, 0))
}

func (p *Pager) wrapChapter(ch book.Chapter) []string {
	var lines []string
	for i, para := range ch.Paragraphs() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, p.wrap(para)...)
	}
	return lines
}

func (p *Pager) wrap(s string) []string {
	lines := strings.Split(ansi.Wrap(s, p.Width, ""), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// Page returns the current page. A book without chapters has no pages and
// yields the zero Page.
func (p *Pager) Page() Page {
	if len(p.pages) == 0 {
		return Page{}
	}
	return p.pages[p.current]
}

// Progress returns the 1-based current page and the total page count.
func (p *Pager) Progress() (current, total int) {
	if len(p.pages) == 0 {
		return 0, 0
	}
	return p.current + 1, len(p.pages)
}

// NextPage advances one page. It returns false at the last page.
func (p *Pager) NextPage() bool {
	if p.current < len(p.pages)-1 {
		p.current++
		return true
	}
	return false
}

// PrevPage goes back one page. It returns false at the first page.
func (p *Pager) PrevPage() bool {
	if p.current > 0 {
		p.current--
		return true
	}
	return false
}

// NextChapter moves to the first page of the next chapter.
func (p *Pager) NextChapter() bool {
	ch := p.CurrentChapter()
	if ch+1 < len(p.chapterStarts) {
		p.current = p.chapterStarts[ch+1]
		return true
	}
	return false
}

// PrevChapter moves to the start of the current chapter, or to the start of
// the previous one when already there.
func (p *Pager) PrevChapter() bool {
	ch := p.CurrentChapter()
	if len(p.chapterStarts) == 0 {
		return false
	}
	if p.current > p.chapterStarts[ch] {
		p.current = p.chapterStarts[ch]
		return true
	}
	if ch > 0 {
		p.current = p.chapterStarts[ch-1]
		return true
	}
	return false
}

// JumpToChapter moves to the first page of chapter i. Out of range values are ignored.
func (p *Pager) JumpToChapter(i int) {
	if i >= 0 && i < len(p.chapterStarts) {
		p.current = p.chapterStarts[i]
	}
}

// JumpToPage moves to absolute page index i, clamped to the book.
func (p *Pager) JumpToPage(i int) {
	if len(p.pages) == 0 {
		return
	}
	p.current = min(max(i, 0), len(p.pages)-1)
}

// AtEnd returns true on the last page.
func (p *Pager) AtEnd() bool {
	return p.current >= len(p.pages)-1
}

// CurrentChapter returns the index of the chapter on the current page.
func (p *Pager) CurrentChapter() int {
	return p.Page().Chapter
}

// CurrentChapterTitle returns the title of the chapter on the current page.
func (p *Pager) CurrentChapterTitle() string {
	if ch := p.CurrentChapter(); ch < len(p.Book.Chapters) {
		return p.Book.Chapters[ch].Title
	}
	return ""
}

// ChapterPages returns how many pages chapter i occupies.
func (p *Pager) ChapterPages(i int) int {
	if i < 0 || i >= len(p.chapterStarts) {
		return 0
	}
	end := len(p.pages)
	if i+1 < len(p.chapterStarts) {
		end = p.chapterStarts[i+1]
	}
	return end - p.chapterStarts[i]
}

// Position returns the current chapter and page within it.
func (p *Pager) Position() Position {
	pg := p.Page()
	return Position{Chapter: pg.Chapter, Page: pg.Number}
}

// Restore moves to pos, clamping the page to the chapter's length. An unknown
// chapter leaves the position unchanged.
func (p *Pager) Restore(pos Position) {
	if pos.Chapter < 0 || pos.Chapter >= len(p.chapterStarts) {
		return
	}
	page := min(max(pos.Page, 0), p.ChapterPages(pos.Chapter)-1)
	p.current = p.chapterStarts[pos.Chapter] + page
}
