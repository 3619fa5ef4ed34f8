package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	html, err := MarkdownToHTML("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Title")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestMarkdownToHTMLTables(t *testing.T) {
	// GFM tables are part of the editor's markdown dialect
	html, err := MarkdownToHTML("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestHTMLToMarkdown(t *testing.T) {
	md := HTMLToMarkdown("<h2>Section</h2><p>Some <em>styled</em> text.</p>")
	assert.Contains(t, md, "## Section")
	assert.Contains(t, md, "*styled*")
}

func TestRoundTripPreservesText(t *testing.T) {
	source := "## Heading\n\nA paragraph with **bold** and a [link](https://example.com).\n\n- one\n- two"

	html, err := MarkdownToHTML(source)
	require.NoError(t, err)
	back := HTMLToMarkdown(html)

	// the exact markdown may differ; the text content must not
	for _, want := range []string{"Heading", "bold", "link", "one", "two", "https://example.com"} {
		assert.Contains(t, back, want)
	}
}

func TestSanitizeHTML(t *testing.T) {
	clean := SanitizeHTML(`<p>fine</p><script>alert(1)</script><img src="/a.png" alt="a">`)
	assert.Contains(t, clean, "<p>fine</p>")
	assert.Contains(t, clean, "<img")
	assert.NotContains(t, clean, "<script>")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 2, WordCount("<p>hello world</p>"))
	assert.Equal(t, 3, WordCount("<p>one <strong>two</strong> three</p>"))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(0))
	assert.Equal(t, 1, ReadingTime(1))
	assert.Equal(t, 1, ReadingTime(200))
	assert.Equal(t, 2, ReadingTime(201))
	assert.Equal(t, 2, ReadingTime(400))
}

func TestOutline(t *testing.T) {
	html := "<h1>First</h1><p>text</p><h2>Second</h2><h3>Third</h3><h4>Ignored</h4>"

	outline := Outline(html)
	require.Len(t, outline, 3)

	assert.Equal(t, "First", outline[0].Text)
	assert.Equal(t, 1, outline[0].Level)
	assert.Equal(t, "Second", outline[1].Text)
	assert.Equal(t, 2, outline[1].Level)
	assert.Equal(t, "Third", outline[2].Text)
	assert.Equal(t, 3, outline[2].Level)

	// ids are stable and unique within the document
	seen := map[string]bool{}
	for _, h := range outline {
		assert.True(t, strings.HasPrefix(h.ID, "heading-"))
		assert.False(t, seen[h.ID])
		seen[h.ID] = true
	}
}

func TestOutlineEmpty(t *testing.T) {
	assert.Empty(t, Outline("<p>no headings here</p>"))
}
