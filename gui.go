//go:build gui

package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/metcalfc/folio/internal/book"
	"github.com/metcalfc/folio/internal/pager"
	"github.com/spf13/cobra"
)

// The window shows whole chapters, so the pager only tracks which one is open.
const (
	guiPageWidth  = 80
	guiPageHeight = 40
)

func newReadCmd(r *runner) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a book chapter by chapter in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := r.load(cmd, args)
			if err != nil {
				return err
			}
			p := pager.New(l.book, guiPageWidth, guiPageHeight)
			sess := r.openSession(l.source, p, fresh)
			runWindow(l.book, p, sess)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the saved reading position")
	return cmd
}

func runWindow(b book.ParsedBook, p *pager.Pager, sess *session) {
	a := app.New()
	title := b.Title
	if b.Author != "" {
		title += " by " + b.Author
	}
	w := a.NewWindow(title)

	chapterLabel := widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	body := widget.NewLabel("")
	body.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(body)

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter
	controlsLabel := widget.NewLabel("←/→: chapter  PgUp/PgDn: scroll  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	show := func(i int) {
		if i < 0 || i >= len(b.Chapters) {
			return
		}
		p.JumpToChapter(i)
		ch := b.Chapters[i]
		chapterLabel.SetText(ch.Title)
		body.SetText(strings.Join(ch.Paragraphs(), "\n\n"))
		scroll.ScrollToTop()
		statusLabel.SetText(fmt.Sprintf("Chapter %d/%d | %d characters", i+1, len(b.Chapters), ch.CharCount()))
	}

	tocList := widget.NewList(
		func() int { return len(b.Chapters) },
		func() fyne.CanvasObject { return widget.NewLabel("Chapter") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(b.Chapters[id].Title)
		},
	)
	tocList.OnSelected = func(id widget.ListItemID) {
		show(id)
	}

	readingContent := container.NewBorder(
		container.NewVBox(statusLabel, chapterLabel),
		controlsLabel,
		nil, nil,
		scroll,
	)
	tocContainer := container.NewBorder(widget.NewLabel("Contents"), nil, nil, nil, tocList)
	split := container.NewHSplit(tocContainer, readingContent)
	split.Offset = 0.3

	w.SetContent(split)

	quit := func() {
		sess.save(p.Position())
		a.Quit()
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight, fyne.KeyN:
			if p.NextChapter() {
				tocList.Select(p.CurrentChapter())
			}
		case fyne.KeyLeft, fyne.KeyP:
			if p.PrevChapter() {
				tocList.Select(p.CurrentChapter())
			}
		case fyne.KeyPageDown, fyne.KeySpace:
			scroll.Offset.Y += scroll.Size().Height * 0.9
			scroll.Refresh()
		case fyne.KeyPageUp:
			scroll.Offset.Y = max(scroll.Offset.Y-scroll.Size().Height*0.9, 0)
			scroll.Refresh()
		case fyne.KeyQ, fyne.KeyEscape:
			quit()
		}
	})
	w.SetOnClosed(func() {
		sess.save(p.Position())
	})

	if len(b.Chapters) > 0 {
		tocList.Select(p.CurrentChapter())
	} else {
		statusLabel.SetText("No chapters to read.")
	}

	w.Resize(fyne.NewSize(1000, 700))
	w.ShowAndRun()
}
