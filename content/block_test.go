package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	blocks := doc.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockParagraph, blocks[0].Type)
	assert.Empty(t, blocks[0].Text)
	assert.NotEmpty(t, blocks[0].Key)
}

func TestApplyInlineStyleToggles(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key
	sel := Selection{BlockKey: key, Offset: 0, Length: 4}

	styled := doc.ApplyInlineStyle(sel, "BOLD")
	require.Len(t, styled.Blocks()[0].InlineStyleRanges, 1)

	// the original snapshot is untouched
	assert.Empty(t, doc.Blocks()[0].InlineStyleRanges)

	// applying the identical range again removes it
	plain := styled.ApplyInlineStyle(sel, "BOLD")
	assert.Empty(t, plain.Blocks()[0].InlineStyleRanges)
}

func TestApplyInlineStyleEmptySelection(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key

	same := doc.ApplyInlineStyle(Selection{BlockKey: key, Offset: 2, Length: 0}, "BOLD")
	assert.Same(t, doc, same)
}

func TestSetBlockType(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key

	heading := doc.SetBlockType(key, BlockHeaderOne)
	assert.Equal(t, BlockHeaderOne, heading.Blocks()[0].Type)
	assert.Equal(t, BlockParagraph, doc.Blocks()[0].Type)
}

func TestSetBlockTypeAtomicImmutable(t *testing.T) {
	doc := NewDocument().InsertMedia(0, MediaInfo{URL: "/a.png", Kind: MediaImage})
	atomicKey := doc.Blocks()[0].Key

	same := doc.SetBlockType(atomicKey, BlockParagraph)
	assert.Same(t, doc, same)
}

func TestInsertLink(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key

	linked := doc.InsertLink(Selection{BlockKey: key, Offset: 0, Length: 3}, "https://example.com")
	ranges := linked.Blocks()[0].EntityRanges
	require.Len(t, ranges, 1)

	e, ok := linked.Entity(ranges[0].Key)
	require.True(t, ok)
	assert.Equal(t, EntityLink, e.Kind)
	assert.Equal(t, "https://example.com", e.URL)
}

func TestInsertMedia(t *testing.T) {
	doc := NewDocument().InsertMedia(1, MediaInfo{
		URL:     "https://cdn.example.com/a.png",
		Kind:    MediaImage,
		Caption: "a caption",
		Handle:  "handle-1",
	})

	blocks := doc.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockAtomic, blocks[1].Type)
	require.Len(t, blocks[1].EntityRanges, 1)

	e, ok := doc.Entity(blocks[1].EntityRanges[0].Key)
	require.True(t, ok)
	assert.Equal(t, EntityMedia, e.Kind)
	assert.Equal(t, "https://cdn.example.com/a.png", e.Src)
	assert.Equal(t, "a caption", e.Caption)
	assert.Equal(t, "handle-1", e.Handle)
}

func TestInsertMediaClampsPosition(t *testing.T) {
	doc := NewDocument().InsertMedia(99, MediaInfo{URL: "/a.png", Kind: MediaImage})
	blocks := doc.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, BlockAtomic, blocks[1].Type)
}

func TestRemoveBlockDropsOrphanedEntity(t *testing.T) {
	doc := NewDocument().InsertMedia(1, MediaInfo{URL: "/a.png", Kind: MediaImage, Handle: "h1"})
	atomic := doc.Blocks()[1]
	entityKey := atomic.EntityRanges[0].Key

	removed := doc.RemoveBlock(atomic.Key)
	_, ok := removed.Entity(entityKey)
	assert.False(t, ok)
	assert.Empty(t, removed.MediaHandles())

	// the prior snapshot still resolves it
	_, ok = doc.Entity(entityKey)
	assert.True(t, ok)
}

func TestRemoveLastBlockLeavesParagraph(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key

	removed := doc.RemoveBlock(key)
	blocks := removed.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockParagraph, blocks[0].Type)
	assert.NotEqual(t, key, blocks[0].Key)
}

func TestSetCaption(t *testing.T) {
	doc := NewDocument().InsertMedia(0, MediaInfo{URL: "/a.png", Kind: MediaImage, Caption: "old"})
	atomic := doc.Blocks()[0]

	updated := doc.SetCaption(atomic.Key, "new")
	e, ok := updated.Entity(atomic.EntityRanges[0].Key)
	require.True(t, ok)
	assert.Equal(t, "new", e.Caption)

	// non-atomic blocks are a no-op
	para := updated.Blocks()[1]
	assert.Same(t, updated, updated.SetCaption(para.Key, "x"))
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := NewDocument()
	key := doc.Blocks()[0].Key
	doc = doc.SetBlockType(key, BlockHeaderTwo)
	doc = doc.InsertMedia(1, MediaInfo{URL: "/v.mp4", Kind: MediaVideo, Caption: "clip", Handle: "h9"})

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blocks"`)
	assert.Contains(t, string(data), `"entityMap"`)

	back, err := Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, len(doc.Blocks()), len(back.Blocks()))
	for i, b := range doc.Blocks() {
		got := back.Blocks()[i]
		assert.Equal(t, b.Key, got.Key)
		assert.Equal(t, b.Type, got.Type)
		assert.Equal(t, b.Text, got.Text)
	}

	e, ok := back.Entity(doc.Blocks()[1].EntityRanges[0].Key)
	require.True(t, ok)
	assert.Equal(t, EntityMedia, e.Kind)
	assert.Equal(t, MediaVideo, e.Media)
	assert.Equal(t, "clip", e.Caption)
	assert.Equal(t, "h9", e.Handle)
}

func TestUnmarshalEmptyDocument(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"blocks":[],"entityMap":{}}`))
	require.NoError(t, err)
	require.Len(t, doc.Blocks(), 1)
	assert.Equal(t, BlockParagraph, doc.Blocks()[0].Type)
}

func TestRenderHTMLGroupsLists(t *testing.T) {
	doc := &Document{
		blocks: []Block{
			{Key: "a", Type: BlockUnorderedItem, Text: "one"},
			{Key: "b", Type: BlockUnorderedItem, Text: "two"},
			{Key: "c", Type: BlockParagraph, Text: "after"},
			{Key: "d", Type: BlockOrderedItem, Text: "first"},
		},
		entities: map[string]Entity{},
	}

	html := doc.RenderHTML()
	assert.Equal(t, "<ul><li>one</li><li>two</li></ul><p>after</p><ol><li>first</li></ol>", html)
}

func TestRenderHTMLStylesAndLinks(t *testing.T) {
	doc := &Document{
		blocks: []Block{{
			Key:               "a",
			Type:              BlockParagraph,
			Text:              "bold link",
			InlineStyleRanges: []StyleRange{{Offset: 0, Length: 4, Style: "BOLD"}},
			EntityRanges:      []EntityRange{{Offset: 5, Length: 4, Key: "e1"}},
		}},
		entities: map[string]Entity{"e1": {Kind: EntityLink, URL: "https://example.com"}},
	}

	html := doc.RenderHTML()
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, `<a href="https://example.com">link</a>`)
}

func TestRenderHTMLEscapesText(t *testing.T) {
	doc := &Document{
		blocks:   []Block{{Key: "a", Type: BlockParagraph, Text: "<script>alert(1)</script>"}},
		entities: map[string]Entity{},
	}
	assert.NotContains(t, doc.RenderHTML(), "<script>")
}

func TestRenderHTMLMissingEntityPlaceholder(t *testing.T) {
	doc := &Document{
		blocks: []Block{{
			Key:          "a",
			Type:         BlockAtomic,
			Text:         " ",
			EntityRanges: []EntityRange{{Offset: 0, Length: 1, Key: "gone"}},
		}},
		entities: map[string]Entity{},
	}
	assert.Equal(t, `<figure class="missing-media"></figure>`, doc.RenderHTML())
}

func TestRenderHTMLMedia(t *testing.T) {
	doc := NewDocument().InsertMedia(0, MediaInfo{URL: "/a.png", Kind: MediaImage, Caption: "pic"})
	html := doc.RenderHTML()
	assert.Contains(t, html, `<figure><img src="/a.png" alt="pic">`)
	assert.Contains(t, html, "<figcaption>pic</figcaption>")
}

func TestPlainTextSkipsAtomicBlocks(t *testing.T) {
	doc := &Document{
		blocks: []Block{
			{Key: "a", Type: BlockParagraph, Text: "hello"},
			{Key: "b", Type: BlockAtomic, Text: " "},
			{Key: "c", Type: BlockParagraph, Text: "world"},
		},
		entities: map[string]Entity{},
	}
	assert.Equal(t, "hello\nworld", doc.PlainText())
}
