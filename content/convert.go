package content

import (
	"bytes"
	stdhtml "html"
	"strconv"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// markdown is the configured goldmark instance, reused across calls.
// GFM brings the table and strikethrough extensions the editor emits.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// sanitizer is the allow-list policy applied to every HTML body before
// it is rendered or persisted. On top of the stock UGC allow list it
// admits the embed tags the editor produces, with a constrained
// attribute set.
var sanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img", "iframe", "video", "div", "span", "figure", "figcaption")
	p.AllowAttrs("src", "alt", "controls", "class").OnElements("img", "iframe", "video", "div", "span")
	return p
}()

// stripper removes all markup, leaving plain text.
var stripper = bluemonday.StrictPolicy()

var mdConverter = htmltomarkdown.NewConverter(
	htmltomarkdown.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// MarkdownToHTML parses Markdown (GFM tables and strikethrough
// included), renders it to HTML and sanitizes the result. On parse
// failure the original source is returned unchanged alongside the
// error, so the caller never loses content.
func MarkdownToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return source, err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// SanitizeHTML applies the body allow-list policy to raw HTML.
func SanitizeHTML(source string) string {
	return sanitizer.Sanitize(source)
}

// HTMLToMarkdown performs the lossy structural conversion back to
// Markdown. It never fails to the caller: on conversion error the
// input is returned as opaque text.
func HTMLToMarkdown(source string) string {
	md, err := mdConverter.ConvertString(source)
	if err != nil {
		return source
	}
	return strings.TrimSpace(md)
}

// WordCount counts non-empty whitespace-separated tokens after markup
// is stripped. Empty content yields 0.
func WordCount(source string) int {
	plain := stdhtml.UnescapeString(stripper.Sanitize(source))
	return len(strings.Fields(plain))
}

// ReadingTime estimates minutes to read at 200 words per minute,
// rounded up.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + 199) / 200
}

// Heading is one entry of a document outline.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Outline extracts h1/h2/h3 elements in document order, assigning each
// a positional synthetic id. Parse failures yield an empty outline.
func Outline(source string) []Heading {
	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil
	}
	var out []Heading
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3":
				out = append(out, Heading{
					ID:    "heading-" + strconv.Itoa(len(out)),
					Text:  strings.TrimSpace(nodeText(n)),
					Level: int(n.Data[1] - '0'),
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
