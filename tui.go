//go:build !gui

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/folio/internal/book"
	"github.com/metcalfc/folio/internal/pager"
	"github.com/spf13/cobra"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxTextWidth  = 72
	// status line, blank line and help line
	chromeHeight = 3
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	chapterTitleStyle = lipgloss.NewStyle().
				Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	First       key.Binding
	Last        key.Binding
	TOC         key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.NextChapter, k.PrevChapter, k.TOC, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last},
		{k.NextChapter, k.PrevChapter, k.TOC},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", " ", "pgdown"),
		key.WithHelp("→/space", "next page"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "pgup"),
		key.WithHelp("←", "prev page"),
	),
	NextChapter: key.NewBinding(
		key.WithKeys("n", "]"),
		key.WithHelp("n", "next chapter"),
	),
	PrevChapter: key.NewBinding(
		key.WithKeys("p", "["),
		key.WithHelp("p", "prev chapter"),
	),
	First: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "first page"),
	),
	Last: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "last page"),
	),
	TOC: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "contents"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// chapterItem is a table of contents entry in the chapter list.
type chapterItem struct {
	index int
	ch    book.Chapter
}

func (i chapterItem) Title() string { return i.ch.Title }
func (i chapterItem) Description() string {
	return fmt.Sprintf("Chapter %d · %d characters", i.index+1, i.ch.CharCount())
}
func (i chapterItem) FilterValue() string { return i.ch.Title }

type model struct {
	*pager.Pager
	keys     keyMap
	help     help.Model
	toc      list.Model
	showTOC  bool
	quitting bool
	width    int
	height   int
}

func newModel(p *pager.Pager) model {
	items := make([]list.Item, len(p.Book.Chapters))
	for i, ch := range p.Book.Chapters {
		items[i] = chapterItem{index: i, ch: ch}
	}
	toc := list.New(items, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	toc.Title = "Contents"
	toc.DisableQuitKeybindings()

	m := model{
		Pager:  p,
		keys:   keys,
		help:   help.New(),
		toc:    toc,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.Resize(pageSize(m.width, m.height))
	return m
}

// pageSize returns the text area for a terminal of the given size.
func pageSize(width, height int) (int, int) {
	return min(width-4, maxTextWidth), height - chromeHeight
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.Resize(pageSize(msg.Width, msg.Height))
		m.help.Width = msg.Width
		m.toc.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.showTOC {
			return m.updateTOC(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.NextPage()
		case key.Matches(msg, m.keys.Prev):
			m.PrevPage()
		case key.Matches(msg, m.keys.NextChapter):
			m.NextChapter()
		case key.Matches(msg, m.keys.PrevChapter):
			m.PrevChapter()
		case key.Matches(msg, m.keys.First):
			m.JumpToPage(0)
		case key.Matches(msg, m.keys.Last):
			_, total := m.Progress()
			m.JumpToPage(total - 1)
		case key.Matches(msg, m.keys.TOC):
			if len(m.Book.Chapters) > 0 {
				m.showTOC = true
				m.toc.Select(m.CurrentChapter())
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}
	return m, nil
}

// updateTOC handles keys while the chapter list is open. Keys go to the list
// while its filter is being typed.
func (m model) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.toc.FilterState() != list.Filtering {
		switch msg.String() {
		case "enter":
			if item, ok := m.toc.SelectedItem().(chapterItem); ok {
				m.JumpToChapter(item.index)
			}
			m.showTOC = false
			return m, nil
		case "esc", "t", "q":
			if m.toc.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			m.showTOC = false
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.toc, cmd = m.toc.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.showTOC {
		return m.toc.View()
	}
	if len(m.Book.Chapters) == 0 {
		return "No chapters to read."
	}

	current, total := m.Progress()
	end := ""
	if m.AtEnd() {
		end = completeStyle.Render(" [END]")
	}
	status := statusStyle.Render(fmt.Sprintf("%s · %s | Page %d/%d",
		m.Book.Title, m.CurrentChapterTitle(), current, total)) + end

	pg := m.Page()
	lines := make([]string, m.Height)
	copy(lines, pg.Lines)
	if pg.Number == 0 && len(lines) > 0 {
		lines[0] = chapterTitleStyle.Render(lines[0])
	}
	margin := max((m.width-m.Width)/2, 0)
	body := lipgloss.NewStyle().MarginLeft(margin).Render(strings.Join(lines, "\n"))

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func newReadCmd(r *runner) *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "read [file]",
		Short: "Read a book page by page in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := r.load(cmd, args)
			if err != nil {
				return err
			}
			width, height := pageSize(defaultWidth, defaultHeight)
			p := pager.New(l.book, width, height)
			sess := r.openSession(l.source, p, fresh)

			prog := tea.NewProgram(newModel(p), tea.WithAltScreen())
			if _, err := prog.Run(); err != nil {
				return err
			}
			sess.save(p.Position())
			return nil
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the saved reading position")
	return cmd
}
