// Package content holds the rich-text block model and the format
// converters used by the editor and the public render paths.
package content

import (
	"crypto/rand"
	"encoding/hex"
)

type BlockType string

const (
	BlockParagraph     BlockType = "unstyled"
	BlockHeaderOne     BlockType = "header-one"
	BlockHeaderTwo     BlockType = "header-two"
	BlockUnorderedItem BlockType = "unordered-list-item"
	BlockOrderedItem   BlockType = "ordered-list-item"
	BlockQuote         BlockType = "blockquote"
	BlockAtomic        BlockType = "atomic"
)

type EntityKind string

const (
	EntityLink  EntityKind = "LINK"
	EntityMedia EntityKind = "MEDIA"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Entity is out-of-line data referenced by one or more blocks: a link
// target, or a media source with its caption and deletion handle.
type Entity struct {
	Kind    EntityKind `json:"type"`
	URL     string     `json:"url,omitempty"`
	Src     string     `json:"src,omitempty"`
	Media   MediaKind  `json:"mediaKind,omitempty"`
	Caption string     `json:"caption,omitempty"`
	Handle  string     `json:"deleteHandle,omitempty"`
}

type StyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

type EntityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Key    string `json:"key"`
}

// Block is a single structural unit of a document. An atomic block
// carries no text of its own; its content is the entity referenced by
// its single entity range.
type Block struct {
	Key               string        `json:"key"`
	Type              BlockType     `json:"type"`
	Text              string        `json:"text"`
	InlineStyleRanges []StyleRange  `json:"inlineStyleRanges,omitempty"`
	EntityRanges      []EntityRange `json:"entityRanges,omitempty"`
}

// entityKey returns the key of the entity owned by an atomic block.
func (b Block) entityKey() (string, bool) {
	if b.Type != BlockAtomic || len(b.EntityRanges) == 0 {
		return "", false
	}
	return b.EntityRanges[0].Key, true
}

// Document is an immutable snapshot of an ordered block sequence plus
// its entity map. Every mutating operation returns a new snapshot and
// leaves the receiver untouched, so a previous snapshot stays valid
// for undo.
type Document struct {
	blocks   []Block
	entities map[string]Entity
}

// NewDocument returns a document holding a single empty paragraph.
// An empty block list is never a valid editor state.
func NewDocument() *Document {
	return &Document{
		blocks:   []Block{{Key: newKey(), Type: BlockParagraph}},
		entities: map[string]Entity{},
	}
}

func newKey() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand.Read does not fail on supported platforms
		return "00000000"
	}
	return hex.EncodeToString(b[:])
}

// Blocks returns the ordered block sequence.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Entity resolves an entity key from the document's entity map.
func (d *Document) Entity(key string) (Entity, bool) {
	e, ok := d.entities[key]
	return e, ok
}

func (d *Document) clone() *Document {
	next := &Document{
		blocks:   make([]Block, len(d.blocks)),
		entities: make(map[string]Entity, len(d.entities)),
	}
	for i, b := range d.blocks {
		nb := b
		nb.InlineStyleRanges = append([]StyleRange(nil), b.InlineStyleRanges...)
		nb.EntityRanges = append([]EntityRange(nil), b.EntityRanges...)
		next.blocks[i] = nb
	}
	for k, e := range d.entities {
		next.entities[k] = e
	}
	return next
}

func (d *Document) blockIndex(key string) int {
	for i, b := range d.blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// Selection addresses a text range inside one block.
type Selection struct {
	BlockKey string
	Offset   int
	Length   int
}

func (s Selection) empty() bool { return s.Length <= 0 }

// ApplyInlineStyle toggles an inline style on the selected range. An
// empty selection is a no-op.
func (d *Document) ApplyInlineStyle(sel Selection, style string) *Document {
	i := d.blockIndex(sel.BlockKey)
	if sel.empty() || i < 0 {
		return d
	}
	next := d.clone()
	b := &next.blocks[i]
	for j, r := range b.InlineStyleRanges {
		if r.Offset == sel.Offset && r.Length == sel.Length && r.Style == style {
			b.InlineStyleRanges = append(b.InlineStyleRanges[:j], b.InlineStyleRanges[j+1:]...)
			return next
		}
	}
	b.InlineStyleRanges = append(b.InlineStyleRanges, StyleRange{Offset: sel.Offset, Length: sel.Length, Style: style})
	return next
}

// SetBlockType changes the structural type of a block. Atomic blocks
// keep their entity and cannot be retyped.
func (d *Document) SetBlockType(blockKey string, t BlockType) *Document {
	i := d.blockIndex(blockKey)
	if i < 0 || d.blocks[i].Type == BlockAtomic || t == BlockAtomic {
		return d
	}
	next := d.clone()
	next.blocks[i].Type = t
	return next
}

// InsertLink creates a link entity and associates it with the selected
// range. An empty selection is a no-op.
func (d *Document) InsertLink(sel Selection, url string) *Document {
	i := d.blockIndex(sel.BlockKey)
	if sel.empty() || i < 0 {
		return d
	}
	next := d.clone()
	key := newKey()
	next.entities[key] = Entity{Kind: EntityLink, URL: url}
	b := &next.blocks[i]
	b.EntityRanges = append(b.EntityRanges, EntityRange{Offset: sel.Offset, Length: sel.Length, Key: key})
	return next
}

// MediaInfo describes an uploaded asset to embed as an atomic block.
type MediaInfo struct {
	URL     string
	Kind    MediaKind
	Caption string
	Handle  string
}

// InsertMedia creates a media entity and an atomic block referencing it
// at the given position, as a single state transition. The position is
// clamped to the block sequence bounds.
func (d *Document) InsertMedia(at int, info MediaInfo) *Document {
	next := d.clone()
	if at < 0 {
		at = 0
	}
	if at > len(next.blocks) {
		at = len(next.blocks)
	}
	key := newKey()
	next.entities[key] = Entity{
		Kind:    EntityMedia,
		Src:     info.URL,
		Media:   info.Kind,
		Caption: info.Caption,
		Handle:  info.Handle,
	}
	block := Block{
		Key:          newKey(),
		Type:         BlockAtomic,
		Text:         " ",
		EntityRanges: []EntityRange{{Offset: 0, Length: 1, Key: key}},
	}
	next.blocks = append(next.blocks[:at], append([]Block{block}, next.blocks[at:]...)...)
	return next
}

// RemoveBlock removes a block and any entities only it referenced. The
// remote asset behind a media entity is not touched here; releasing it
// is the caller's job. Removing the last block leaves a single empty
// paragraph rather than an empty document.
func (d *Document) RemoveBlock(blockKey string) *Document {
	i := d.blockIndex(blockKey)
	if i < 0 {
		return d
	}
	next := d.clone()
	removed := next.blocks[i]
	next.blocks = append(next.blocks[:i], next.blocks[i+1:]...)

	for _, r := range removed.EntityRanges {
		if !next.entityReferenced(r.Key) {
			delete(next.entities, r.Key)
		}
	}
	if len(next.blocks) == 0 {
		next.blocks = []Block{{Key: newKey(), Type: BlockParagraph}}
	}
	return next
}

func (d *Document) entityReferenced(key string) bool {
	for _, b := range d.blocks {
		for _, r := range b.EntityRanges {
			if r.Key == key {
				return true
			}
		}
	}
	return false
}

// SetCaption updates the caption of the media entity owned by an
// atomic block, leaving every other entity untouched.
func (d *Document) SetCaption(blockKey, caption string) *Document {
	i := d.blockIndex(blockKey)
	if i < 0 {
		return d
	}
	key, ok := d.blocks[i].entityKey()
	if !ok {
		return d
	}
	e, ok := d.entities[key]
	if !ok || e.Kind != EntityMedia {
		return d
	}
	next := d.clone()
	e.Caption = caption
	next.entities[key] = e
	return next
}

// MediaHandles lists the deletion handles of every media entity in the
// document, for remote cleanup when the document itself is deleted.
func (d *Document) MediaHandles() []string {
	var handles []string
	for _, e := range d.entities {
		if e.Kind == EntityMedia && e.Handle != "" {
			handles = append(handles, e.Handle)
		}
	}
	return handles
}
