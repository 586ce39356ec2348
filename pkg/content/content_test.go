// ABOUTME: Tests for content flattening, text detection, and preview truncation
// ABOUTME: Covers all three shapes, non-text skipping, grapheme-safe cuts, and JSON decoding

package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rivo/uniseg"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Content
		want string
	}{
		{"bare string", String("hello\nworld"), "hello\nworld"},
		{"zero value", Content{}, ""},
		{"single text part", Single(Text("hi")), "hi"},
		{"single image part", Single(Part{Type: "image", Value: "data:..."}), ""},
		{"parts joined by newline", Parts(Text("a"), Text("b"), Text("c")), "a\nb\nc"},
		{"non-text parts skipped", Parts(Text("a"), Part{Type: "image", Value: "x"}, Text("b")), "a\nb"},
		{"no text parts", Parts(Part{Type: "file", Value: "x"}), ""},
		{"empty sequence", Parts(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Content
		want bool
	}{
		{"bare string", String(""), true},
		{"empty text part", Single(Text("")), true},
		{"image part", Single(Part{Type: "image"}), false},
		{"mixed parts", Parts(Part{Type: "image"}, Text("")), true},
		{"only images", Parts(Part{Type: "image"}, Part{Type: "image"}), false},
		{"empty sequence", Parts(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.HasText(); got != tt.want {
				t.Errorf("HasText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreview_TruncatesToExactLength(t *testing.T) {
	t.Parallel()

	c := Parts(Text(strings.Repeat("A", 120)))
	got := c.Preview(20)

	if len(got) != 20 {
		t.Errorf("len(Preview) = %d, want 20", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview = %q, want ... suffix", got)
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short line unchanged", "hello", 20, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"first line only", "first\nsecond line", 20, "first"},
		{"cut with ellipsis", "abcdefghij", 8, "abcde..."},
		{"tiny max has no room for ellipsis", "abcdefghij", 2, "ab"},
		{"zero max", "abc", 0, ""},
		{"empty text", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Preview(tt.text, tt.max); got != tt.want {
				t.Errorf("Preview(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestPreview_DoesNotSplitGraphemes(t *testing.T) {
	t.Parallel()

	// Each family emoji is a single grapheme made of several code points.
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	text := strings.Repeat(family, 10)

	got := Preview(text, 6)
	if n := uniseg.GraphemeClusterCount(got); n != 6 {
		t.Errorf("grapheme count = %d, want 6", n)
	}
	if want := strings.Repeat(family, 3) + "..."; got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
}

func TestUnmarshalJSON_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantShape Shape
		wantText  string
	}{
		{"string", `"plain"`, ShapeString, "plain"},
		{"object", `{"contentType":"text","value":"one"}`, ShapePart, "one"},
		{"array", `[{"contentType":"text","value":"a"},{"contentType":"image","value":"x"},{"contentType":"text","value":"b"}]`, ShapeParts, "a\nb"},
		{"null", `null`, ShapeString, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c Content
			if err := json.Unmarshal([]byte(tt.input), &c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Shape() != tt.wantShape {
				t.Errorf("Shape() = %v, want %v", c.Shape(), tt.wantShape)
			}
			if c.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", c.Text(), tt.wantText)
			}
		})
	}
}

func TestUnmarshalJSON_RejectsNumbers(t *testing.T) {
	t.Parallel()

	var c Content
	if err := json.Unmarshal([]byte(`42`), &c); err == nil {
		t.Fatal("expected error for numeric content")
	}
}

func TestMarshalJSON_KeepsShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Single(Text("x")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := string(data), `{"contentType":"text","value":"x"}`; got != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}
