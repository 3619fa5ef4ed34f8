package content

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// RenderHTML derives the HTML rendering of the block model. Whatever
// editing mode produced the body, this is the shape the public pages
// consume.
func (d *Document) RenderHTML() string {
	var sb strings.Builder
	var list BlockType

	closeList := func() {
		switch list {
		case BlockUnorderedItem:
			sb.WriteString("</ul>")
		case BlockOrderedItem:
			sb.WriteString("</ol>")
		}
		list = ""
	}

	for _, b := range d.blocks {
		if b.Type != list {
			closeList()
		}
		switch b.Type {
		case BlockHeaderOne:
			sb.WriteString("<h1>" + d.renderText(b) + "</h1>")
		case BlockHeaderTwo:
			sb.WriteString("<h2>" + d.renderText(b) + "</h2>")
		case BlockQuote:
			sb.WriteString("<blockquote>" + d.renderText(b) + "</blockquote>")
		case BlockUnorderedItem:
			if list != BlockUnorderedItem {
				sb.WriteString("<ul>")
				list = BlockUnorderedItem
			}
			sb.WriteString("<li>" + d.renderText(b) + "</li>")
		case BlockOrderedItem:
			if list != BlockOrderedItem {
				sb.WriteString("<ol>")
				list = BlockOrderedItem
			}
			sb.WriteString("<li>" + d.renderText(b) + "</li>")
		case BlockAtomic:
			sb.WriteString(d.renderAtomic(b))
		default:
			sb.WriteString("<p>" + d.renderText(b) + "</p>")
		}
	}
	closeList()
	return sb.String()
}

func (d *Document) renderAtomic(b Block) string {
	key, ok := b.entityKey()
	if !ok {
		return `<figure class="missing-media"></figure>`
	}
	e, ok := d.entities[key]
	if !ok || e.Kind != EntityMedia {
		// dangling reference: degrade to a placeholder, never fail
		return `<figure class="missing-media"></figure>`
	}
	var sb strings.Builder
	sb.WriteString("<figure>")
	if e.Media == MediaVideo {
		sb.WriteString(fmt.Sprintf(`<video src="%s" controls></video>`, html.EscapeString(e.Src)))
	} else {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(e.Src), html.EscapeString(e.Caption)))
	}
	if e.Caption != "" {
		sb.WriteString("<figcaption>" + html.EscapeString(e.Caption) + "</figcaption>")
	}
	sb.WriteString("</figure>")
	return sb.String()
}

var styleTags = map[string]string{
	"BOLD":      "strong",
	"ITALIC":    "em",
	"UNDERLINE": "u",
	"CODE":      "code",
}

// renderText emits a block's text with its inline styles and link
// entities applied. Ranges are cut at every style or entity boundary
// so overlapping ranges nest cleanly.
func (d *Document) renderText(b Block) string {
	text := []rune(b.Text)
	if len(b.InlineStyleRanges) == 0 && len(b.EntityRanges) == 0 {
		return html.EscapeString(b.Text)
	}

	cuts := map[int]bool{0: true, len(text): true}
	mark := func(off, length int) {
		if off < 0 || length <= 0 || off >= len(text) {
			return
		}
		end := off + length
		if end > len(text) {
			end = len(text)
		}
		cuts[off] = true
		cuts[end] = true
	}
	for _, r := range b.InlineStyleRanges {
		mark(r.Offset, r.Length)
	}
	for _, r := range b.EntityRanges {
		mark(r.Offset, r.Length)
	}

	points := make([]int, 0, len(cuts))
	for p := range cuts {
		points = append(points, p)
	}
	sort.Ints(points)

	var sb strings.Builder
	for i := 0; i+1 < len(points); i++ {
		start, end := points[i], points[i+1]
		seg := html.EscapeString(string(text[start:end]))

		for _, r := range b.InlineStyleRanges {
			if r.Offset <= start && start < r.Offset+r.Length {
				if tag, ok := styleTags[r.Style]; ok {
					seg = "<" + tag + ">" + seg + "</" + tag + ">"
				}
			}
		}
		for _, r := range b.EntityRanges {
			if r.Offset <= start && start < r.Offset+r.Length {
				if e, ok := d.entities[r.Key]; ok && e.Kind == EntityLink {
					seg = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(e.URL), seg)
				}
			}
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

// PlainText concatenates the text of every non-atomic block, used for
// excerpts and word counts of block-model bodies.
func (d *Document) PlainText() string {
	var parts []string
	for _, b := range d.blocks {
		if b.Type == BlockAtomic {
			continue
		}
		if t := strings.TrimSpace(b.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
