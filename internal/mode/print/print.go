// ABOUTME: Headless print mode: route, resolve, scan and send with text, JSON, or markdown output
// ABOUTME: Agents are read from the directory on every command; markdown is rendered with glamour

package print

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mailru/easyjson"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// Format selects the output formatter.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, json, or markdown (md); empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or markdown)", s)
	}
}

// Config configures print mode output.
type Config struct {
	Format        Format
	Width         int // markdown word wrap; 0 means 80
	PreviewLength int // message previews in send output; 0 means 80
}

// Deps provides dependencies for print mode.
type Deps struct {
	Directory        agents.Directory
	Sender           chat.Sender
	MatchMode        agents.MatchMode
	MaxSuggestions   int
	RequireRecipient bool
	Logger           *slog.Logger
}

// Printer runs one command and writes its result.
type Printer struct {
	w      io.Writer
	cfg    Config
	deps   Deps
	router *orchestrate.Router
}

// New creates a printer writing to w.
func New(w io.Writer, cfg Config, deps Deps) *Printer {
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 80
	}
	if deps.Logger == nil {
		deps.Logger = log.Discard()
	}
	return &Printer{
		w:      w,
		cfg:    cfg,
		deps:   deps,
		router: orchestrate.NewRouter(deps.Logger),
	}
}

// Input returns the text argument, reading r when no argument is given.
func Input(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (p *Printer) agents() []agents.Agent {
	if p.deps.Directory == nil {
		return nil
	}
	return p.deps.Directory.Agents()
}

// Route prints the routing decision and its reasoning trace.
func (p *Printer) Route(text string) error {
	d := p.router.Route(text, p.agents())

	switch p.cfg.Format {
	case FormatJSON:
		return p.writeEasyJSON(d)
	case FormatMarkdown:
		return p.writeMarkdown(d.Markdown())
	default:
		var b strings.Builder
		writeDecisionText(&b, d)
		_, err := io.WriteString(p.w, b.String())
		return err
	}
}

// Agents prints the directory contents.
func (p *Printer) Agents() error {
	list := nonNil(p.agents())

	switch p.cfg.Format {
	case FormatJSON:
		return p.writeJSON(struct {
			Agents []agents.Agent `json:"agents"`
		}{list})
	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("## Agents\n\n| ID | Name | Status | Keywords |\n|---|---|---|---|\n")
		for _, a := range list {
			fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", a.ID, a.Name, a.Status, strings.Join(a.Keywords, ", "))
		}
		return p.writeMarkdown(b.String())
	default:
		var b strings.Builder
		writeAgentsText(&b, list)
		_, err := io.WriteString(p.w, b.String())
		return err
	}
}

type resolveOutput struct {
	Text     string         `json:"text"`
	Mentions []agents.Agent `json:"mentions"`
}

// Resolve prints the agents text's @mentions refer to, in order.
func (p *Printer) Resolve(text string) error {
	found := mention.Resolve(text, agents.Mentionable(p.agents()))

	switch p.cfg.Format {
	case FormatJSON:
		return p.writeJSON(resolveOutput{Text: text, Mentions: nonNil(found)})
	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("## Mentions\n\n")
		if len(found) == 0 {
			b.WriteString("No agents mentioned.\n")
		}
		for _, a := range found {
			fmt.Fprintf(&b, "- **%s** (`%s`)\n", a.Name, a.ID)
		}
		return p.writeMarkdown(b.String())
	default:
		var b strings.Builder
		if len(found) == 0 {
			b.WriteString("No agents mentioned.\n")
		}
		for _, a := range found {
			fmt.Fprintf(&b, "%s\t%s\n", a.ID, a.Name)
		}
		_, err := io.WriteString(p.w, b.String())
		return err
	}
}

type scanOutput struct {
	Active     bool           `json:"active"`
	Query      string         `json:"query"`
	Anchor     int            `json:"anchor"`
	Candidates []agents.Agent `json:"candidates"`
}

// Scan prints the mention being typed at cursor and the candidates an
// autocomplete list would offer for it.
func (p *Printer) Scan(text string, cursor int) error {
	res := mention.Scan(text, cursor)
	out := scanOutput{Active: res.Active, Query: res.Query, Anchor: res.Anchor, Candidates: []agents.Agent{}}
	if res.Active {
		c := p.deps.MatchMode.Filter(agents.Mentionable(p.agents()), res.Query)
		if p.deps.MaxSuggestions > 0 && len(c) > p.deps.MaxSuggestions {
			c = c[:p.deps.MaxSuggestions]
		}
		out.Candidates = nonNil(c)
	}

	switch p.cfg.Format {
	case FormatJSON:
		return p.writeJSON(out)
	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("## Mention scan\n\n")
		writeScanText(&b, out, "- ")
		return p.writeMarkdown(b.String())
	default:
		var b strings.Builder
		writeScanText(&b, out, "  ")
		_, err := io.WriteString(p.w, b.String())
		return err
	}
}

type replyOutput struct {
	From string `json:"from"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type sendOutput struct {
	Message    mention.Message       `json:"message"`
	Outcome    orchestrate.Outcome   `json:"outcome"`
	Recipients []string              `json:"recipients"`
	Replies    []replyOutput         `json:"replies"`
	Decision   *orchestrate.Decision `json:"decision,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Send submits text through a one-shot chat session and prints the replies.
// A delivery error is printed and returned.
func (p *Printer) Send(ctx context.Context, text string) error {
	s := chat.NewSession(chat.Config{
		Directory:        p.deps.Directory,
		Sender:           p.deps.Sender,
		Router:           p.router,
		MatchMode:        p.deps.MatchMode,
		MaxSuggestions:   p.deps.MaxSuggestions,
		RequireRecipient: p.deps.RequireRecipient,
		Logger:           p.deps.Logger,
	})
	s.Editor().SetText(text, len([]rune(text)))

	res, sendErr := s.Submit(ctx)
	out := sendOutput{
		Message:    res.Message,
		Outcome:    res.Dispatch.Outcome,
		Recipients: agents.IDs(res.Dispatch.Recipients),
		Replies:    make([]replyOutput, 0, len(res.Replies)),
		Decision:   res.Dispatch.Decision,
	}
	for _, r := range res.Replies {
		out.Replies = append(out.Replies, replyOutput{From: r.From.ID, Name: r.From.Name, Text: r.Text})
	}
	if sendErr != nil {
		out.Error = sendErr.Error()
	}

	var err error
	switch p.cfg.Format {
	case FormatJSON:
		err = p.writeJSON(out)
	case FormatMarkdown:
		err = p.writeMarkdown(sendMarkdown(out, p.cfg.PreviewLength))
	default:
		var b strings.Builder
		writeSendText(&b, out, p.cfg.PreviewLength)
		_, err = io.WriteString(p.w, b.String())
	}
	if sendErr != nil {
		return sendErr
	}
	return err
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

func (p *Printer) writeEasyJSON(v easyjson.Marshaler) error {
	if _, err := easyjson.MarshalToWriter(v, p.w); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err := io.WriteString(p.w, "\n")
	return err
}

func (p *Printer) writeMarkdown(md string) error {
	_, err := fmt.Fprintln(p.w, renderMarkdown(md, p.cfg.Width))
	return err
}

func nonNil(list []agents.Agent) []agents.Agent {
	if list == nil {
		return []agents.Agent{}
	}
	return list
}
