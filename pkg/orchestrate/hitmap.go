// ABOUTME: HitMap: agent id to matched keywords, encoded with sorted keys
// ABOUTME: Sorted encoding keeps identical routing inputs byte-identical on the wire

package orchestrate

import (
	"slices"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// HitMap maps an agent id to the keywords it matched.
type HitMap map[string][]string

// MarshalEasyJSON writes the map with keys in ascending order.
func (m HitMap) MarshalEasyJSON(w *jwriter.Writer) {
	if m == nil {
		w.RawString("null")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	w.RawByte('{')
	for i, k := range keys {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(k)
		w.RawByte(':')
		kws := m[k]
		if kws == nil {
			w.RawString("null")
			continue
		}
		w.RawByte('[')
		for j, kw := range kws {
			if j > 0 {
				w.RawByte(',')
			}
			w.String(kw)
		}
		w.RawByte(']')
	}
	w.RawByte('}')
}

// UnmarshalEasyJSON reads a JSON object of string arrays.
func (m *HitMap) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.Skip()
		*m = nil
		return
	}
	l.Delim('{')
	out := make(HitMap)
	for !l.IsDelim('}') {
		key := l.String()
		l.WantColon()
		var kws []string
		if l.IsNull() {
			l.Skip()
		} else {
			l.Delim('[')
			kws = make([]string, 0, 2)
			for !l.IsDelim(']') {
				kws = append(kws, l.String())
				l.WantComma()
			}
			l.Delim(']')
		}
		out[key] = kws
		l.WantComma()
	}
	l.Delim('}')
	*m = out
}

// MarshalJSON supports json.Marshaler.
func (m HitMap) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	m.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

// UnmarshalJSON supports json.Unmarshaler.
func (m *HitMap) UnmarshalJSON(data []byte) error {
	l := jlexer.Lexer{Data: data}
	m.UnmarshalEasyJSON(&l)
	return l.Error()
}
