package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHTML(t *testing.T) {
	assert.Equal(t, "<p>raw</p>", HTMLContent("<p>raw</p>").HTML())

	doc := &Document{
		blocks:   []Block{{Key: "a", Type: BlockHeaderOne, Text: "Title"}},
		entities: map[string]Entity{},
	}
	assert.Equal(t, "<h1>Title</h1>", BlockContent(doc).HTML())
}

func TestContentJSONShapeDetection(t *testing.T) {
	var c Content
	require.NoError(t, json.Unmarshal([]byte(`"<p>hi</p>"`), &c))
	assert.Equal(t, ShapeHTML, c.Shape)
	assert.Equal(t, "<p>hi</p>", c.Raw)

	require.NoError(t, json.Unmarshal([]byte(`{"blocks":[{"key":"a","type":"unstyled","text":"hi"}],"entityMap":{}}`), &c))
	assert.Equal(t, ShapeBlocks, c.Shape)
	require.NotNil(t, c.Doc)
	assert.Equal(t, "hi", c.Doc.Blocks()[0].Text)
}

func TestContentValueScanRoundTrip(t *testing.T) {
	doc := NewDocument().InsertMedia(0, MediaInfo{URL: "/a.png", Kind: MediaImage, Handle: "h1"})
	stored, err := BlockContent(doc).Value()
	require.NoError(t, err)

	var back Content
	require.NoError(t, back.Scan(stored))
	assert.Equal(t, ShapeBlocks, back.Shape)
	require.NotNil(t, back.Doc)
	assert.Equal(t, []string{"h1"}, back.Doc.MediaHandles())
}

func TestContentScanOpaqueHTML(t *testing.T) {
	var c Content
	require.NoError(t, c.Scan("<p>legacy body</p>"))
	assert.Equal(t, ShapeHTML, c.Shape)
	assert.Equal(t, "<p>legacy body</p>", c.Raw)

	// malformed JSON-looking bodies degrade to opaque HTML
	require.NoError(t, c.Scan("{not json"))
	assert.Equal(t, ShapeHTML, c.Shape)
}

func TestContentScanNil(t *testing.T) {
	var c Content
	require.NoError(t, c.Scan(nil))
	assert.True(t, c.IsZero())
}
