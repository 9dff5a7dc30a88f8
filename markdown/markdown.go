// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. It covers the
// subset of markdown that model answers tend to use: paragraphs,
// headings, emphasis, inline code, fenced code blocks, lists, and links.
package markdown

import "github.com/fwojciec/sift"

// Render parses markdown source and returns ANSI-styled terminal output
// wrapped to width. Code blocks keep their original line breaks and are
// never reflowed. A non-positive width falls back to 80 columns.
func Render(source string, width int, theme sift.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}
