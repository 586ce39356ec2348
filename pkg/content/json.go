// ABOUTME: JSON codec for Content: decodes string, object, or array into the tagged union
// ABOUTME: Boundary decoding only; everything past the decoder works on the typed shape

package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes c in the shape it was built with.
func (c Content) MarshalJSON() ([]byte, error) {
	switch c.shape {
	case ShapePart:
		return json.Marshal(c.parts[0])
	case ShapeParts:
		if c.parts == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(c.parts)
	default:
		return json.Marshal(c.str)
	}
}

// UnmarshalJSON decodes a bare string, a single part object, or a part array.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("decoding content: empty input")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decoding string content: %w", err)
		}
		*c = String(s)
	case '{':
		var p Part
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return fmt.Errorf("decoding content part: %w", err)
		}
		*c = Single(p)
	case '[':
		var ps []Part
		if err := json.Unmarshal(trimmed, &ps); err != nil {
			return fmt.Errorf("decoding content parts: %w", err)
		}
		*c = Parts(ps...)
	case 'n':
		*c = String("")
	default:
		return fmt.Errorf("decoding content: unsupported JSON value %q", trimmed[:1])
	}
	return nil
}
