package reader

import (
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLFormat implements Format for the HTML editions Gutenberg publishes.
type HTMLFormat struct{}

func init() {
	Register(&HTMLFormat{})
}

func (f *HTMLFormat) Name() string         { return "HTML" }
func (f *HTMLFormat) Extensions() []string { return []string{".html", ".htm", ".xhtml"} }

func (f *HTMLFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return extractTextFromHTML(Decode(data)), nil
}

// blockAtoms end the current paragraph when they open or close.
var blockAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Nav: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true, atom.Tr: true,
	atom.Ul: true,
}

// skipAtoms are never rendered as text.
var skipAtoms = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
}

// textCollector gathers paragraphs from an HTML tree. Whitespace inside a
// paragraph is collapsed except in <pre>, and <br> keeps its line break.
type textCollector struct {
	paragraphs []string
	current    strings.Builder
	pre        int
}

func (c *textCollector) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if c.pre > 0 {
			c.current.WriteString(n.Data)
		} else {
			c.current.WriteString(collapseSpace(n.Data))
		}
		return
	case html.ElementNode:
		if skipAtoms[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			c.current.WriteString("\n")
			return
		}
	}

	block := n.Type == html.ElementNode && blockAtoms[n.DataAtom]
	if block {
		c.flush()
	}
	if n.DataAtom == atom.Pre {
		c.pre++
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child)
	}
	if n.DataAtom == atom.Pre {
		c.pre--
	}
	if block {
		c.flush()
	}
}

func (c *textCollector) flush() {
	var lines []string
	for _, line := range strings.Split(c.current.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	c.current.Reset()
	if len(lines) > 0 {
		c.paragraphs = append(c.paragraphs, strings.Join(lines, "\n"))
	}
}

func (c *textCollector) String() string {
	c.flush()
	return strings.Join(c.paragraphs, "\n\n")
}

func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// extractTextFromHTML renders an HTML document as plain text with one blank
// line between block elements, so headings land on lines of their own.
func extractTextFromHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return ""
	}
	var c textCollector
	c.walk(doc)
	return c.String()
}
