// ABOUTME: Chat session: one mention editor, dispatch on submit, concurrent delivery
// ABOUTME: Publishes session events and keeps an in-memory transcript of messages and replies

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

var (
	// ErrEmptyMessage is returned when submitting a blank draft.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoRecipient is returned when a message mentions nobody, no agent is
	// routed, and the session requires a recipient.
	ErrNoRecipient = errors.New("no agent mentioned or routed")
)

// Config configures a Session.
type Config struct {
	Directory        agents.Directory
	Sender           Sender              // nil means no delivery
	Router           *orchestrate.Router // nil means a router with Logger
	MatchMode        agents.MatchMode
	MaxSuggestions   int
	RequireRecipient bool
	Logger           *slog.Logger
	Now              func() time.Time
}

// Entry is one line of the transcript: either an outbound message or a reply.
type Entry struct {
	MessageID string
	From      *agents.Agent // nil for the user's own message
	Text      string
	At        time.Time
}

// Result describes one submitted message.
type Result struct {
	Message  mention.Message
	Dispatch orchestrate.Dispatch
	Replies  []Reply // successful replies in recipient order
}

// Session ties an editor to routing and delivery. Editing methods are meant
// for the single goroutine driving the input surface; Submit may run elsewhere
// once the draft is taken.
type Session struct {
	cfg    Config
	logger *slog.Logger
	router *orchestrate.Router
	editor *mention.Editor
	bus    *Bus[Event]

	mu         sync.Mutex
	transcript []Entry
}

// NewSession creates a session.
func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	router := cfg.Router
	if router == nil {
		router = orchestrate.NewRouter(logger)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{
		cfg:    cfg,
		logger: logger,
		router: router,
		editor: mention.NewEditor(cfg.Directory,
			mention.WithMatchMode(cfg.MatchMode),
			mention.WithMaxSuggestions(cfg.MaxSuggestions),
		),
		bus: NewBus[Event](),
	}
}

// Editor exposes the draft editor. Use HandleKey and Select on the session
// rather than on the editor so accepted mentions are published.
func (s *Session) Editor() *mention.Editor {
	return s.editor
}

// Subscribe registers an event handler and returns its unsubscribe function.
func (s *Session) Subscribe(h Handler[Event]) func() {
	return s.bus.Subscribe(h)
}

// HandleKey forwards k to the editor and reports whether it was consumed.
func (s *Session) HandleKey(k mention.Key) bool {
	st := s.editor.State()

	consumed := s.editor.HandleKey(k)
	if consumed && (k == mention.KeyEnter || k == mention.KeyTab) {
		s.publishAccepted(st, st.Highlighted)
	}
	return consumed
}

// Select accepts the suggestion at index.
func (s *Session) Select(index int) bool {
	st := s.editor.State()

	if !s.editor.Select(index) {
		return false
	}
	s.publishAccepted(st, index)
	return true
}

func (s *Session) publishAccepted(st mention.State, index int) {
	if index < 0 || index >= len(st.Matches) {
		return
	}
	a := st.Matches[index]
	s.logger.Debug("mention accepted", "agent", a.ID, "query", st.Query)
	s.bus.Publish(Event{Type: EventMentionAccepted, Agent: &a})
}

// Transcript returns a copy of the messages and replies so far.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Submit finalizes the draft, decides its recipients, and delivers it to each
// of them concurrently, waiting for their replies. A blank draft returns
// ErrEmptyMessage; with RequireRecipient an unaddressed draft returns
// ErrNoRecipient. In both cases the draft is left untouched.
// A delivery failure returns the first error after every delivery finished.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	text := s.editor.Text()
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyMessage
	}

	list := s.agents()
	dispatch := s.router.Dispatch(text, list)
	if len(dispatch.Recipients) == 0 && s.cfg.RequireRecipient {
		return Result{Dispatch: dispatch}, ErrNoRecipient
	}

	// The message resolves against the same snapshot as the dispatch.
	msg := mention.NewMessage(text, agents.Mentionable(list), s.cfg.Now())
	s.editor.Reset()
	res := Result{Message: msg, Dispatch: dispatch}

	s.appendEntry(Entry{MessageID: msg.ID, Text: msg.Text, At: msg.CreatedAt})
	s.logger.Debug("message sent", "id", msg.ID, "outcome", dispatch.Outcome, "recipients", len(dispatch.Recipients))
	s.bus.Publish(Event{Type: EventMessageSent, Message: &msg, Dispatch: &dispatch})
	if dispatch.Outcome == orchestrate.OutcomeRouted {
		s.bus.Publish(Event{Type: EventMessageRouted, Message: &msg, Dispatch: &dispatch})
	}

	if s.cfg.Sender == nil || len(dispatch.Recipients) == 0 {
		return res, nil
	}

	replies, err := s.deliver(ctx, msg, dispatch)
	res.Replies = replies
	return res, err
}

func (s *Session) deliver(ctx context.Context, msg mention.Message, dispatch orchestrate.Dispatch) ([]Reply, error) {
	got := make([]*Reply, len(dispatch.Recipients))
	g, gCtx := errgroup.WithContext(ctx)

	for i, recipient := range dispatch.Recipients {
		g.Go(func() error {
			r, err := s.deliverOne(gCtx, Delivery{Message: msg, Recipient: recipient, Outcome: dispatch.Outcome})
			if err != nil {
				s.logger.Warn("delivery failed", "id", msg.ID, "agent", recipient.ID, "error", err)
				s.bus.Publish(Event{Type: EventDeliveryFailed, Message: &msg, Agent: &recipient, Err: err})
				return fmt.Errorf("delivering to %s: %w", recipient.ID, err)
			}
			if r == nil {
				return nil
			}
			got[i] = r
			s.appendEntry(Entry{MessageID: msg.ID, From: &recipient, Text: r.Text, At: r.At})
			s.bus.Publish(Event{Type: EventReplyReceived, Message: &msg, Agent: &recipient, Reply: r})
			return nil
		})
	}

	err := g.Wait()

	replies := make([]Reply, 0, len(got))
	for _, r := range got {
		if r != nil {
			replies = append(replies, *r)
		}
	}
	return replies, err
}

// deliverOne sends d and waits for its reply. A nil reply with a nil error
// means the backend closed the channel without answering.
func (s *Session) deliverOne(ctx context.Context, d Delivery) (*Reply, error) {
	ch, err := s.cfg.Sender.Send(ctx, d)
	if err != nil {
		return nil, err
	}
	select {
	case r, ok := <-ch:
		if !ok {
			return nil, nil
		}
		if r.Err != nil {
			return nil, r.Err
		}
		return &r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Session) appendEntry(e Entry) {
	s.mu.Lock()
	s.transcript = append(s.transcript, e)
	s.mu.Unlock()
}

func (s *Session) agents() []agents.Agent {
	if s.cfg.Directory == nil {
		return nil
	}
	return s.cfg.Directory.Agents()
}
