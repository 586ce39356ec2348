// ABOUTME: Public SDK for programmatic mention resolution, routing and delivery
// ABOUTME: Wraps the chat session with functional options and convenience result types

package sdk

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// Event is a session event forwarded to OnEvent listeners.
type Event = chat.Event

// Client is the main entry point for the SDK.
type Client struct {
	dir              agents.Directory
	sender           chat.Sender
	router           *orchestrate.Router
	logger           *slog.Logger
	mode             agents.MatchMode
	maxSuggestions   int
	requireRecipient bool

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	handlers []func(Event)
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	dir              agents.Directory
	sender           chat.Sender
	logger           *slog.Logger
	mode             agents.MatchMode
	maxSuggestions   int
	requireRecipient bool
}

// WithDirectory sets the agent directory consulted on every operation.
func WithDirectory(d agents.Directory) Option {
	return func(c *clientConfig) {
		c.dir = d
	}
}

// WithAgents uses a fixed agent list as the directory.
func WithAgents(list ...agents.Agent) Option {
	return func(c *clientConfig) {
		c.dir = agents.StaticDirectory(list)
	}
}

// WithSender sets the delivery backend. The default echoes each message back
// immediately.
func WithSender(s chat.Sender) Option {
	return func(c *clientConfig) {
		c.sender = s
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithMatchMode selects substring (default) or fuzzy autocomplete filtering.
func WithMatchMode(m agents.MatchMode) Option {
	return func(c *clientConfig) {
		c.mode = m
	}
}

// WithMaxSuggestions caps autocomplete lists in sessions; 0 means unlimited.
func WithMaxSuggestions(n int) Option {
	return func(c *clientConfig) {
		c.maxSuggestions = n
	}
}

// WithRequireRecipient makes Send fail with chat.ErrNoRecipient when nobody
// is mentioned and no agent is routed.
func WithRequireRecipient(v bool) Option {
	return func(c *clientConfig) {
		c.requireRecipient = v
	}
}

// New creates a new SDK client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{mode: agents.MatchSubstring}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.dir == nil {
		return nil, errors.New("no agent directory; use WithDirectory or WithAgents")
	}
	if cfg.logger == nil {
		cfg.logger = log.Discard()
	}
	if cfg.sender == nil {
		cfg.sender = chat.EchoSender{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		dir:              cfg.dir,
		sender:           cfg.sender,
		router:           orchestrate.NewRouter(cfg.logger),
		logger:           cfg.logger,
		mode:             cfg.mode,
		maxSuggestions:   cfg.maxSuggestions,
		requireRecipient: cfg.requireRecipient,
		ctx:              ctx,
		cancel:           cancel,
	}, nil
}

// Agents returns the current directory contents.
func (c *Client) Agents() []agents.Agent {
	return c.dir.Agents()
}

// Resolve returns the mentionable agents that text's @mentions refer to,
// in order, repeats included.
func (c *Client) Resolve(text string) []agents.Agent {
	return mention.Resolve(text, agents.Mentionable(c.dir.Agents()))
}

// Route runs keyword routing over the directory's routable agents.
func (c *Client) Route(text string) orchestrate.Decision {
	return c.router.Route(text, c.dir.Agents())
}

// Dispatch decides the recipients of text without sending it.
func (c *Client) Dispatch(text string) orchestrate.Dispatch {
	return c.router.Dispatch(text, c.dir.Agents())
}

// NewSession creates an interactive session sharing the client's directory,
// sender and listeners.
func (c *Client) NewSession() *chat.Session {
	s := chat.NewSession(chat.Config{
		Directory:        c.dir,
		Sender:           c.sender,
		Router:           c.router,
		MatchMode:        c.mode,
		MaxSuggestions:   c.maxSuggestions,
		RequireRecipient: c.requireRecipient,
		Logger:           c.logger,
	})
	s.Subscribe(c.forward)
	return s
}

// Send submits text as one message and waits for the recipients' replies.
// The send is cancelled if either ctx or the client (via Close) is done.
func (c *Client) Send(ctx context.Context, text string) (*Result, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	// Derive from the client's lifecycle context so Close() cancels in-flight work.
	sendCtx, sendCancel := context.WithCancel(c.ctx)
	defer sendCancel()
	stop := context.AfterFunc(ctx, sendCancel)
	defer stop()

	s := c.NewSession()
	s.Editor().SetText(text, len([]rune(text)))

	// The result is returned even on error so callers can inspect the dispatch.
	res, err := s.Submit(sendCtx)
	return &Result{Message: res.Message, Dispatch: res.Dispatch, Replies: res.Replies}, err
}

// OnEvent registers a listener for session events of every session the
// client creates, including those behind Send.
func (c *Client) OnEvent(handler func(Event)) {
	c.mu.Lock()
	c.handlers = append(c.handlers, handler)
	c.mu.Unlock()
}

func (c *Client) forward(e Event) {
	c.mu.RLock()
	handlers := c.handlers
	c.mu.RUnlock()
	for _, h := range handlers {
		h(e)
	}
}

// Close cancels in-flight sends.
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	return nil
}

// Result wraps a submitted message with convenience methods.
type Result struct {
	Message  mention.Message
	Dispatch orchestrate.Dispatch
	Replies  []chat.Reply
}

// Recipients returns the ids of the agents the message was addressed to.
func (r *Result) Recipients() []string {
	return agents.IDs(r.Dispatch.Recipients)
}

// Text returns the reply texts joined by newlines, in recipient order.
func (r *Result) Text() string {
	parts := make([]string, 0, len(r.Replies))
	for _, rep := range r.Replies {
		if rep.Text != "" {
			parts = append(parts, rep.Text)
		}
	}
	return strings.Join(parts, "\n")
}
