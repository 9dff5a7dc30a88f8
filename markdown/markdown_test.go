package markdown_test

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/markdown"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	// Force ANSI color output so styled elements produce visible escape
	// codes regardless of the test environment's terminal.
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := sift.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("the api gateway was the root cause", 80, theme)
		assert.Contains(t, stripANSI(result), "the api gateway was the root cause")
	})

	t.Run("heading renders content with distinct styling", func(t *testing.T) {
		t.Parallel()
		heading := markdown.Render("# Root Cause", 80, theme)
		paragraph := markdown.Render("Root Cause", 80, theme)
		assert.Contains(t, stripANSI(heading), "Root Cause")
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("bold and italic text", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("**critical** and *minor*", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "critical")
		assert.Contains(t, stripped, "minor")
	})

	t.Run("inline code", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("check `app.log` for details", 80, theme)
		assert.Contains(t, stripANSI(result), "app.log")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```\n2024-01-01 10:00:00 ERROR [api] connection refused\n```"
		result := markdown.Render(src, 20, theme)
		assert.Contains(t, stripANSI(result), "2024-01-01 10:00:00 ERROR [api] connection refused")
	})

	t.Run("fenced code block shows language label", func(t *testing.T) {
		t.Parallel()
		src := "```sql\nSELECT 1\n```"
		result := markdown.Render(src, 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "sql")
		assert.Contains(t, stripped, "SELECT 1")
	})

	t.Run("bullet list", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("- db errors\n- api errors", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "db errors")
		assert.Contains(t, stripped, "api errors")
		assert.Contains(t, stripped, "•")
	})

	t.Run("ordered list keeps numbering", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("1. first\n2. second", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "1. first")
		assert.Contains(t, stripped, "2. second")
	})

	t.Run("nested list", func(t *testing.T) {
		t.Parallel()
		src := "- services\n  - api\n  - db"
		result := markdown.Render(src, 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "services")
		assert.Contains(t, stripped, "api")
		assert.Contains(t, stripped, "db")
	})

	t.Run("list item continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap onto continuation lines"
		result := markdown.Render(src, 30, theme)
		lines := strings.Split(stripANSI(result), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "•"))
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
			}
		}
	})

	t.Run("link shows text and URL", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("[runbook](https://example.com/runbook)", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "runbook")
		assert.Contains(t, stripped, "example.com/runbook")
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		result := markdown.Render(long, 30, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "word1")
		assert.Contains(t, stripped, "word12")
		assert.Greater(t, len(strings.Split(result, "\n")), 1)
	})

	t.Run("multiple paragraphs separated by blank lines", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("first paragraph\n\nsecond paragraph", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "first paragraph")
		assert.Contains(t, stripped, "second paragraph")
		assert.Contains(t, stripped, "\n\n")
	})

	t.Run("indented code block", func(t *testing.T) {
		t.Parallel()
		src := "paragraph\n\n    indented line\n    another line"
		result := markdown.Render(src, 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "indented line")
		assert.Contains(t, stripped, "another line")
	})

	t.Run("thematic break renders a rule", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("above\n\n---\n\nbelow", 80, theme)
		stripped := stripANSI(result)
		assert.Contains(t, stripped, "above")
		assert.Contains(t, stripped, "─")
		assert.Contains(t, stripped, "below")
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 0, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})
}
