// ABOUTME: Renders the chat surface: transcript, input line with cursor, suggestion list, footer
// ABOUTME: Suggestion rows are truncated to the terminal width with go-runewidth

package interactive

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
)

const footerHelp = "enter send · tab/enter accept · ↑/↓ navigate · esc dismiss · ctrl+r reasoning · ctrl+c quit"

// View renders the full surface.
func (m Model) View() string {
	s := Styles()
	var b strings.Builder

	for _, e := range m.session.Transcript() {
		b.WriteString(m.entryLine(e))
		b.WriteByte('\n')
	}

	if m.showReasoning && m.lastDecision != nil {
		b.WriteString(s.Dim.Render(strings.TrimRight(m.lastDecision.Markdown(), "\n")))
		b.WriteByte('\n')
	}

	ed := m.session.Editor()
	b.WriteString(s.Prompt.Render("> "))
	b.WriteString(inputLine(ed.Text(), ed.Cursor()))

	if list := m.suggestionView(ed.State()); list != "" {
		b.WriteByte('\n')
		b.WriteString(list)
	}

	b.WriteByte('\n')
	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render("Error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(s.Info.Render(m.status))
	default:
		b.WriteString(s.Dim.Render(runewidth.Truncate(footerHelp, m.width, "…")))
	}
	return b.String()
}

func (m Model) entryLine(e chat.Entry) string {
	s := Styles()
	if e.From == nil {
		return s.User.Render("You: ") + e.Text
	}
	return s.Agent.Render(e.From.Name+": ") + e.Text
}

// inputLine draws the draft with the character under the cursor reversed.
func inputLine(text string, cursor int) string {
	s := Styles()
	r := []rune(text)
	if cursor >= len(r) {
		return text + s.Cursor.Render(" ")
	}
	return string(r[:cursor]) + s.Cursor.Render(string(r[cursor])) + string(r[cursor+1:])
}

// suggestionView renders the open suggestion list, or "" when closed.
func (m Model) suggestionView(st mention.State) string {
	if !st.Open {
		return ""
	}
	s := Styles()
	if st.Empty() {
		return s.Dim.Render("  No agents found")
	}

	start := 0
	if st.Highlighted >= m.maxRows {
		start = st.Highlighted - m.maxRows + 1
	}
	end := min(start+m.maxRows, len(st.Matches))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := suggestionRow(st.Matches[i], i == st.Highlighted, m.width)
		if i == st.Highlighted {
			row = s.Selection.Render(row)
		}
		lines = append(lines, row)
	}
	if end < len(st.Matches) {
		lines = append(lines, s.Dim.Render(fmt.Sprintf("  … %d more", len(st.Matches)-end)))
	}
	return strings.Join(lines, "\n")
}

// suggestionRow formats one candidate as "> Name  description" fitted to width.
func suggestionRow(a agents.Agent, highlighted bool, width int) string {
	marker := "  "
	if highlighted {
		marker = "> "
	}
	row := marker + a.Name
	detail := a.Description
	if detail == "" {
		detail = a.Category
	}
	if detail != "" {
		row += "  " + detail
	}
	if a.Status == agents.StatusIdle {
		row += " (idle)"
	}
	if width > 0 && runewidth.StringWidth(row) > width {
		row = runewidth.Truncate(row, width, "…")
	}
	return row
}
