package content

import "encoding/json"

// wireDocument is the persisted layout of the block model. The same
// shape is written by the editor and read back by the render paths.
type wireDocument struct {
	Blocks    []Block           `json:"blocks"`
	EntityMap map[string]Entity `json:"entityMap"`
}

// Marshal serializes the document as {blocks, entityMap} JSON. An empty
// document serializes as a single empty paragraph block.
func (d *Document) Marshal() ([]byte, error) {
	blocks := d.blocks
	if len(blocks) == 0 {
		blocks = []Block{{Key: newKey(), Type: BlockParagraph}}
	}
	entities := d.entities
	if entities == nil {
		entities = map[string]Entity{}
	}
	return json.Marshal(wireDocument{Blocks: blocks, EntityMap: entities})
}

// Unmarshal reconstructs a document snapshot from its serialized form.
// The round trip preserves block order, types, text and entity data.
// Entity references that do not resolve are kept; the render path
// degrades them to placeholders instead of failing.
func Unmarshal(data []byte) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	doc := &Document{blocks: wire.Blocks, entities: wire.EntityMap}
	if doc.entities == nil {
		doc.entities = map[string]Entity{}
	}
	if len(doc.blocks) == 0 {
		doc.blocks = []Block{{Key: newKey(), Type: BlockParagraph}}
	}
	return doc, nil
}
