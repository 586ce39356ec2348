// ABOUTME: MentionEditor state machine: Closed or Open(query, anchor, highlighted)
// ABOUTME: Rescans on every edit, navigates with wrapping, splices "@Name " on accept

package mention

import (
	"slices"
	"time"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

// Key is an editor navigation key.
type Key int

const (
	KeyUp Key = iota + 1
	KeyDown
	KeyEnter
	KeyTab
	KeyEscape
)

// State is a snapshot of the suggestion surface.
type State struct {
	Open        bool
	Query       string
	Anchor      int
	Highlighted int
	Matches     []agents.Agent
}

// Empty reports an open suggestion list with no candidates ("no agents found").
func (s State) Empty() bool {
	return s.Open && len(s.Matches) == 0
}

// HighlightedAgent returns the agent under the highlight, if any.
func (s State) HighlightedAgent() (agents.Agent, bool) {
	if !s.Open || len(s.Matches) == 0 {
		return agents.Agent{}, false
	}
	return s.Matches[s.Highlighted], true
}

// Option configures an Editor.
type Option func(*Editor)

// WithMatchMode selects substring (default) or fuzzy candidate filtering.
func WithMatchMode(m agents.MatchMode) Option {
	return func(e *Editor) {
		e.mode = m
	}
}

// WithMaxSuggestions caps the candidate list; 0 means unlimited.
func WithMaxSuggestions(n int) Option {
	return func(e *Editor) {
		e.maxSuggestions = max(n, 0)
	}
}

// Editor owns the mutable mention state of one input surface.
// It is not safe for concurrent use.
type Editor struct {
	dir            agents.Directory
	mode           agents.MatchMode
	maxSuggestions int

	text      []rune
	cursor    int
	state     State
	confirmed []agents.Agent
	dismissed bool // Escape keeps the list closed until the text changes
}

// NewEditor creates an editor that pulls candidates from dir on every change.
// A nil dir yields no candidates.
func NewEditor(dir agents.Directory, opts ...Option) *Editor {
	e := &Editor{dir: dir, mode: agents.MatchSubstring}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Text returns the current draft.
func (e *Editor) Text() string {
	return string(e.text)
}

// Cursor returns the cursor as a rune offset.
func (e *Editor) Cursor() int {
	return e.cursor
}

// State returns a snapshot of the suggestion state.
func (e *Editor) State() State {
	s := e.state
	s.Matches = slices.Clone(s.Matches)
	return s
}

// ConfirmedMentions returns the agents accepted in this draft, deduplicated by id.
func (e *Editor) ConfirmedMentions() []agents.Agent {
	return slices.Clone(e.confirmed)
}

// SetText replaces the draft and cursor, then rescans.
func (e *Editor) SetText(text string, cursor int) {
	e.text = []rune(text)
	e.cursor = clamp(cursor, 0, len(e.text))
	e.textChanged()
}

// Insert types s at the cursor.
func (e *Editor) Insert(s string) {
	if s == "" {
		return
	}
	ins := []rune(s)
	e.text = slices.Insert(e.text, e.cursor, ins...)
	e.cursor += len(ins)
	e.textChanged()
}

// Backspace deletes the rune before the cursor.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.text = slices.Delete(e.text, e.cursor-1, e.cursor)
	e.cursor--
	e.textChanged()
}

// MoveCursor places the cursor at pos and rescans.
func (e *Editor) MoveCursor(pos int) {
	e.cursor = clamp(pos, 0, len(e.text))
	e.refresh()
}

// HandleKey applies a navigation key. It reports whether the editor consumed
// the key; unconsumed keys (e.g. Enter with the list closed) belong to the caller.
func (e *Editor) HandleKey(k Key) bool {
	if !e.state.Open {
		return false
	}

	n := len(e.state.Matches)
	switch k {
	case KeyDown:
		if n > 0 {
			e.state.Highlighted = (e.state.Highlighted + 1) % n
		}
		return true
	case KeyUp:
		if n > 0 {
			e.state.Highlighted = (e.state.Highlighted - 1 + n) % n
		}
		return true
	case KeyEnter, KeyTab:
		if n == 0 {
			return false
		}
		e.accept(e.state.Highlighted)
		return true
	case KeyEscape:
		e.state = State{}
		e.dismissed = true
		return true
	}
	return false
}

// Select accepts the candidate at index, as a pointer click would.
// It reports false when the list is closed or index is out of range.
func (e *Editor) Select(index int) bool {
	if !e.state.Open || index < 0 || index >= len(e.state.Matches) {
		return false
	}
	e.accept(index)
	return true
}

// Send finalizes the draft into a Message and resets the editor.
func (e *Editor) Send(now time.Time) Message {
	msg := NewMessage(string(e.text), agents.Mentionable(e.candidates()), now)
	e.Reset()
	return msg
}

// Reset discards the draft, closes the list, and clears confirmed mentions.
func (e *Editor) Reset() {
	e.text = nil
	e.cursor = 0
	e.state = State{}
	e.confirmed = nil
	e.dismissed = false
}

// accept splices "@Name " over [anchor, cursor) and closes the list.
func (e *Editor) accept(index int) {
	a := e.state.Matches[index]
	ins := []rune("@" + a.Name + " ")
	anchor := e.state.Anchor

	e.text = slices.Concat(e.text[:anchor:anchor], ins, e.text[e.cursor:])
	e.cursor = anchor + len(ins)
	e.state = State{}

	if !slices.ContainsFunc(e.confirmed, func(c agents.Agent) bool { return c.ID == a.ID }) {
		e.confirmed = append(e.confirmed, a)
	}
}

func (e *Editor) textChanged() {
	e.dismissed = false
	e.refresh()
}

// refresh recomputes the state from the text and cursor. The highlight
// resets to 0 so it is always within range of the new match list.
func (e *Editor) refresh() {
	res := scanRunes(e.text, e.cursor)
	if !res.Active || e.dismissed {
		e.state = State{}
		return
	}

	matches := e.mode.Filter(agents.Mentionable(e.candidates()), res.Query)
	if e.maxSuggestions > 0 && len(matches) > e.maxSuggestions {
		matches = matches[:e.maxSuggestions]
	}
	e.state = State{
		Open:    true,
		Query:   res.Query,
		Anchor:  res.Anchor,
		Matches: matches,
	}
}

func (e *Editor) candidates() []agents.Agent {
	if e.dir == nil {
		return nil
	}
	return e.dir.Agents()
}
