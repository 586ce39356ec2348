// ABOUTME: Message content model: bare strings, single tagged parts, or ordered part lists
// ABOUTME: Flattens any shape to plain text and produces grapheme-safe bounded previews

package content

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TypeText is the content type of parts that contribute to the plain text.
const TypeText = "text"

const ellipsis = "..."

// Shape identifies which of the three accepted representations a Content holds.
type Shape int

const (
	ShapeString Shape = iota // bare string
	ShapePart                // single tagged part
	ShapeParts               // ordered sequence of tagged parts
)

// Part is one tagged piece of content, e.g. {"contentType":"text","value":"hi"}.
type Part struct {
	Type  string `json:"contentType"`
	Value string `json:"value"`
}

// Text returns a text-tagged part.
func Text(value string) Part {
	return Part{Type: TypeText, Value: value}
}

// Content is a tagged union over the accepted content shapes.
// The zero value is an empty bare string.
type Content struct {
	shape Shape
	str   string
	parts []Part
}

// String wraps a bare string.
func String(s string) Content {
	return Content{shape: ShapeString, str: s}
}

// Single wraps one tagged part.
func Single(p Part) Content {
	return Content{shape: ShapePart, parts: []Part{p}}
}

// Parts wraps an ordered sequence of tagged parts.
func Parts(ps ...Part) Content {
	return Content{shape: ShapeParts, parts: ps}
}

// Shape reports which representation c holds.
func (c Content) Shape() Shape {
	return c.shape
}

// Text flattens c to plain text. Sequences join their text parts with a
// newline in order; non-text parts are skipped.
func (c Content) Text() string {
	switch c.shape {
	case ShapeString:
		return c.str
	case ShapePart:
		if c.parts[0].Type == TypeText {
			return c.parts[0].Value
		}
		return ""
	case ShapeParts:
		texts := make([]string, 0, len(c.parts))
		for _, p := range c.parts {
			if p.Type == TypeText {
				texts = append(texts, p.Value)
			}
		}
		return strings.Join(texts, "\n")
	default:
		return ""
	}
}

// HasText reports whether c carries at least one text element, even an empty one.
// A bare string always counts as text.
func (c Content) HasText() bool {
	switch c.shape {
	case ShapeString:
		return true
	case ShapePart, ShapeParts:
		for _, p := range c.parts {
			if p.Type == TypeText {
				return true
			}
		}
	}
	return false
}

// Preview returns the first line of the text, cut to at most maxLength
// characters. A cut line ends in "..." and is exactly maxLength long.
// Characters are grapheme clusters.
func (c Content) Preview(maxLength int) string {
	return Preview(c.Text(), maxLength)
}

// Preview applies the Content.Preview rules to plain text.
func Preview(text string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	line, _, _ := strings.Cut(text, "\n")
	if uniseg.GraphemeClusterCount(line) <= maxLength {
		return line
	}
	if maxLength <= len(ellipsis) {
		return firstGraphemes(line, maxLength)
	}
	return firstGraphemes(line, maxLength-len(ellipsis)) + ellipsis
}

// firstGraphemes returns the prefix of s holding n grapheme clusters.
func firstGraphemes(s string, n int) string {
	g := uniseg.NewGraphemes(s)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return s[:end]
}
