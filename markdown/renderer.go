package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sift"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type renderer struct {
	heading   lipgloss.Style
	bold      lipgloss.Style
	italic    lipgloss.Style
	code      lipgloss.Style
	gutter    lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
}

func newRenderer(theme sift.Theme) *renderer {
	return &renderer{
		heading:   lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		code:      lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)).Bold(true),
		gutter:    lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(source []byte, width int) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		r.block(c, source, width, &buf)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (r *renderer) block(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph:
		buf.WriteString(lipgloss.NewStyle().Width(width).Render(r.inlines(n, source)))
		r.blockEnd(n, buf)

	case *ast.Heading:
		styled := r.heading.Render(r.inlines(n, source))
		buf.WriteString(lipgloss.NewStyle().Width(width).Render(styled))
		r.blockEnd(n, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.muted.Render(lang))
			buf.WriteByte('\n')
		}
		r.codeLines(n.Lines(), source, buf)
		r.blockEnd(n, buf)

	case *ast.CodeBlock:
		r.codeLines(n.Lines(), source, buf)
		r.blockEnd(n, buf)

	case *ast.List:
		r.list(n, source, width, buf, 0)
		r.blockEnd(n, buf)

	case *ast.ThematicBreak:
		buf.WriteString(r.muted.Render(strings.Repeat("─", min(width, 40))))
		buf.WriteByte('\n')
		r.blockEnd(n, buf)

	default:
		// Blockquotes, HTML blocks and anything else unrecognized: render
		// the children without special styling.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, source, width, buf)
		}
	}
}

// blockEnd separates top-level blocks with a blank line, except after
// the last one.
func (r *renderer) blockEnd(node ast.Node, buf *bytes.Buffer) {
	buf.WriteByte('\n')
	if node.NextSibling() != nil {
		buf.WriteByte('\n')
	}
}

// codeLines writes code block lines verbatim behind a gutter. Lines are
// never wrapped; log excerpts and commands lose meaning when reflowed.
func (r *renderer) codeLines(lines *text.Segments, source []byte, buf *bytes.Buffer) {
	gutter := r.gutter.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content := strings.TrimRight(string(seg.Value(source)), "\n")
		buf.WriteString(gutter + content)
		buf.WriteByte('\n')
	}
}

func (r *renderer) list(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "• "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		prefix := strings.Repeat("  ", depth) + marker

		var content bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				content.WriteString(r.inlines(in, source))
			case *ast.List:
				if content.Len() > 0 {
					r.listItem(buf, prefix, content.String(), width)
					content.Reset()
					prefix = strings.Repeat(" ", lipgloss.Width(prefix))
				}
				r.list(in, source, width, buf, depth+1)
			default:
				r.block(ic, source, width, &content)
			}
		}
		if content.Len() > 0 {
			r.listItem(buf, prefix, content.String(), width)
		}
	}
}

// listItem writes one item, indenting wrapped continuation lines to
// align under the first character after the marker.
func (r *renderer) listItem(buf *bytes.Buffer, prefix, content string, width int) {
	itemWidth := max(width-lipgloss.Width(prefix), 10)
	wrapped := lipgloss.NewStyle().Width(itemWidth).Render(content)
	continuation := strings.Repeat(" ", lipgloss.Width(prefix))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line)
		} else {
			buf.WriteString(continuation + line)
		}
		buf.WriteByte('\n')
	}
}

// inlines collects the styled inline content of a node's children.
func (r *renderer) inlines(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c, source, &buf)
	}
	return buf.String()
}

func (r *renderer) inline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.inlines(n, source)
		if n.Level == 1 {
			buf.WriteString(r.italic.Render(inner))
		} else {
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		buf.WriteString(r.code.Render(r.inlines(n, source)))

	case *ast.Link:
		buf.WriteString(r.underline.Render(r.inlines(n, source)))
		buf.WriteByte(' ')
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.underline.Render(string(n.URL(source))))

	case *ast.Image:
		buf.WriteString(r.underline.Render(r.inlines(n, source)))
		buf.WriteByte(' ')
		buf.WriteString(r.muted.Render("(" + string(n.Destination) + ")"))

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.inline(c, source, buf)
		}
	}
}
