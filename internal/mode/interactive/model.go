// ABOUTME: Bubble Tea model driving a chat session: keys map to mention editor transitions
// ABOUTME: Enter not consumed by the suggestion list submits the draft through a tea.Cmd

package interactive

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// SubmitDoneMsg carries the outcome of a submit back to the model.
type SubmitDoneMsg struct {
	Result chat.Result
	Err    error
}

// EventMsg wraps a session event delivered through the program.
type EventMsg struct{ Event chat.Event }

// Model is the chat surface. It implements tea.Model with value semantics;
// the session it drives is shared by pointer.
type Model struct {
	ctx     context.Context
	session *chat.Session

	width         int
	maxRows       int
	previewLength int

	busy          bool
	status        string
	err           error
	lastDecision  *orchestrate.Decision
	showReasoning bool
}

// NewModel creates a model for session. Submits run under ctx.
func NewModel(ctx context.Context, session *chat.Session) Model {
	return Model{
		ctx:           ctx,
		session:       session,
		width:         80,
		maxRows:       8,
		previewLength: 80,
	}
}

// SetWidth sets the render width. Returns a new model.
func (m Model) SetWidth(w int) Model {
	if w > 0 {
		m.width = w
	}
	return m
}

// Busy reports whether a submit is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Init returns nil; no commands needed at startup.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key, resize, submit and session event messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m = m.SetWidth(msg.Width)
	case SubmitDoneMsg:
		m.busy = false
		m.err = msg.Err
		if errors.Is(msg.Err, chat.ErrEmptyMessage) {
			m.err = nil
		}
		if msg.Result.Dispatch.Decision != nil {
			m.lastDecision = msg.Result.Dispatch.Decision
		}
		m.status = submitStatus(msg)
	case EventMsg:
		if s := eventStatus(msg.Event); s != "" {
			m.status = s
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	// The submit goroutine owns the editor until it reports back.
	if m.busy {
		return m, nil
	}

	ed := m.session.Editor()
	switch msg.Type {
	case tea.KeyCtrlD:
		if ed.Text() == "" {
			return m, tea.Quit
		}
	case tea.KeyRunes:
		if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			m.session.Select(int(msg.Runes[0] - '1'))
			return m, nil
		}
		ed.Insert(string(msg.Runes))
	case tea.KeySpace:
		ed.Insert(" ")
	case tea.KeyBackspace:
		ed.Backspace()
	case tea.KeyLeft:
		ed.MoveCursor(ed.Cursor() - 1)
	case tea.KeyRight:
		ed.MoveCursor(ed.Cursor() + 1)
	case tea.KeyHome, tea.KeyCtrlA:
		ed.MoveCursor(0)
	case tea.KeyEnd, tea.KeyCtrlE:
		ed.MoveCursor(len([]rune(ed.Text())))
	case tea.KeyCtrlR:
		m.showReasoning = !m.showReasoning
	case tea.KeyUp:
		m.session.HandleKey(mention.KeyUp)
	case tea.KeyDown:
		m.session.HandleKey(mention.KeyDown)
	case tea.KeyTab:
		m.session.HandleKey(mention.KeyTab)
	case tea.KeyEsc:
		m.session.HandleKey(mention.KeyEscape)
	case tea.KeyEnter:
		if m.session.HandleKey(mention.KeyEnter) {
			return m, nil
		}
		return m.submit()
	}
	m.err = nil
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.busy = true
	m.err = nil
	m.status = "Sending..."
	ctx, session := m.ctx, m.session
	return m, func() tea.Msg {
		res, err := session.Submit(ctx)
		return SubmitDoneMsg{Result: res, Err: err}
	}
}

func submitStatus(msg SubmitDoneMsg) string {
	if msg.Err != nil {
		return ""
	}
	d := msg.Result.Dispatch
	switch d.Outcome {
	case orchestrate.OutcomeRouted:
		return fmt.Sprintf("Routed to %s", d.Recipients[0].Name)
	case orchestrate.OutcomeMentioned:
		return fmt.Sprintf("Sent to %d %s", len(d.Recipients), plural(len(d.Recipients), "agent", "agents"))
	default:
		return "No agent matched; message not delivered"
	}
}

func eventStatus(e chat.Event) string {
	switch e.Type {
	case chat.EventMentionAccepted:
		return "Mentioned " + e.Agent.Name
	case chat.EventReplyReceived:
		return e.Agent.Name + " replied"
	case chat.EventDeliveryFailed:
		return "Delivery to " + e.Agent.Name + " failed"
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
