package content

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Shape tags which representation of a body is current.
type Shape string

const (
	ShapeHTML   Shape = "html"
	ShapeBlocks Shape = "blocks"
)

// Content is the tagged union of the two persisted body shapes: a
// sanitized HTML string, or a serialized block-model document. The
// producing editor mode determines which shape is current; every
// consumer must branch on the tag instead of assuming one shape.
type Content struct {
	Shape Shape
	Raw   string    // ShapeHTML
	Doc   *Document // ShapeBlocks
}

func HTMLContent(s string) Content {
	return Content{Shape: ShapeHTML, Raw: s}
}

func BlockContent(d *Document) Content {
	return Content{Shape: ShapeBlocks, Doc: d}
}

func (c Content) IsZero() bool {
	return c.Shape == "" && c.Raw == "" && c.Doc == nil
}

// HTML renders the body regardless of which editing mode produced it.
func (c Content) HTML() string {
	if c.Shape == ShapeBlocks && c.Doc != nil {
		return c.Doc.RenderHTML()
	}
	return c.Raw
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Shape == ShapeBlocks && c.Doc != nil {
		return c.Doc.Marshal()
	}
	return json.Marshal(c.Raw)
}

func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		doc, err := Unmarshal(trimmed)
		if err != nil {
			return err
		}
		*c = BlockContent(doc)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = HTMLContent(s)
	return nil
}

// Value stores the body as either the plain HTML string or the
// {blocks, entityMap} JSON object, matching the persisted layout the
// rest of the system expects.
func (c Content) Value() (driver.Value, error) {
	if c.Shape == ShapeBlocks && c.Doc != nil {
		b, err := c.Doc.Marshal()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	return c.Raw, nil
}

func (c *Content) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*c = Content{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("content: cannot scan %T", value)
	}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if doc, err := Unmarshal(trimmed); err == nil {
			*c = BlockContent(doc)
			return nil
		}
		// malformed JSON body: fall through and treat as opaque HTML
	}
	*c = HTMLContent(raw)
	return nil
}
