package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/metcalfc/folio/internal/book"
	"github.com/spf13/cobra"
)

const (
	maxTOCTitle       = 60
	defaultExportWrap = 72
)

var (
	bookTitleStyle  = lipgloss.NewStyle().Bold(true)
	tocHeaderStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tocCellStyle    = lipgloss.NewStyle().Padding(0, 1)
	tocNumberStyle  = tocCellStyle.Align(lipgloss.Right)
	tocMatcherStyle = lipgloss.NewStyle().Faint(true)
)

func newTOCCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "toc [file]",
		Short: "List the chapters found in a book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := r.load(cmd, args)
			if err != nil {
				return err
			}
			return writeTOC(cmd.OutOrStdout(), l)
		},
	}
}

func writeTOC(w io.Writer, l *loaded) error {
	heading := l.book.Title
	if l.book.Author != "" {
		heading += " by " + l.book.Author
	}
	matcher := "none"
	if l.seg.Matcher != "" {
		matcher = fmt.Sprintf("%s (%d headings)", l.seg.Matcher, len(l.seg.Matches))
	}

	rows := make([][]string, 0, len(l.book.Chapters))
	for i, ch := range l.book.Chapters {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ansi.Truncate(ch.Title, maxTOCTitle, "…"),
			strconv.Itoa(ch.CharCount()),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "CHAPTER", "CHARACTERS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tocHeaderStyle
			case col == 1:
				return tocCellStyle
			default:
				return tocNumberStyle
			}
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n",
		bookTitleStyle.Render(heading),
		tocMatcherStyle.Render("Headings: "+matcher),
		t.Render())
	return err
}

func newExportCmd(r *runner) *cobra.Command {
	var (
		format string
		width  int
	)
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the parsed book as JSON or plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "text" {
				return fmt.Errorf("unknown export format %q (want json or text)", format)
			}
			l, err := r.load(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(l.book)
			}
			return writeText(out, l.book, width)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or text")
	cmd.Flags().IntVarP(&width, "width", "w", defaultExportWrap, "Wrap text output at this many columns (0 disables wrapping)")
	return cmd
}

// writeText renders b as a plain text file with a form feed before every
// chapter.
func writeText(w io.Writer, b book.ParsedBook, width int) error {
	var sb strings.Builder
	sb.WriteString(b.Title + "\n")
	if b.Author != "" {
		sb.WriteString(b.Author + "\n")
	}
	for _, ch := range b.Chapters {
		sb.WriteString("\n\f\n")
		sb.WriteString(ch.Title + "\n")
		for _, para := range ch.Paragraphs() {
			if width > 0 {
				para = ansi.Wrap(para, width, "")
			}
			sb.WriteString("\n" + trimLineEnds(para) + "\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func trimLineEnds(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
