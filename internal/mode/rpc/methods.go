// ABOUTME: Handler implementations for RPC methods (agents, resolve, scan, route, dispatch, send)
// ABOUTME: Dispatches requests to registered handlers with input validation

package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mauromedda/pi-mention-go/internal/chat"
	"github.com/mauromedda/pi-mention-go/internal/log"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// HandlerFunc processes an RPC request's params and returns a Response.
type HandlerFunc func(ctx context.Context, params json.RawMessage) Response

// Router dispatches RPC requests to registered handlers by method name.
type Router struct {
	handlers map[string]HandlerFunc
}

// NewRouter creates a Router with an empty handler registry.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register associates a method name with a handler function.
func (r *Router) Register(method string, handler HandlerFunc) {
	r.handlers[method] = handler
}

// Handle dispatches a request to the registered handler, or returns
// a method-not-found error if no handler is registered.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	h, ok := r.handlers[req.Method]
	if !ok {
		return Response{
			ID:    req.ID,
			Error: NewMethodNotFoundError(req.Method),
		}
	}

	resp := h(ctx, req.Params)
	resp.ID = req.ID
	return resp
}

// Deps holds what the handlers call into. The directory is read on every request.
type Deps struct {
	Directory        agents.Directory
	Sender           chat.Sender
	MatchMode        agents.MatchMode
	MaxSuggestions   int
	RequireRecipient bool
	Logger           *slog.Logger
}

// RegisterHandlers wires every method handler into the given router.
func RegisterHandlers(r *Router, d Deps) {
	if d.Logger == nil {
		d.Logger = log.Discard()
	}
	router := orchestrate.NewRouter(d.Logger)

	r.Register(MethodAgents, handleAgents(d))
	r.Register(MethodResolve, handleResolve(d))
	r.Register(MethodScan, handleScan(d))
	r.Register(MethodRoute, handleRoute(d, router))
	r.Register(MethodDispatch, handleDispatch(d, router))
	r.Register(MethodSend, handleSend(d, router))
}

func (d Deps) agents() []agents.Agent {
	if d.Directory == nil {
		return nil
	}
	return d.Directory.Agents()
}

// decode unmarshals params into v; missing params leave v at its zero value.
func decode(params json.RawMessage, v any) *Error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return NewInvalidParamsError(err.Error())
	}
	return nil
}

func handleAgents(d Deps) HandlerFunc {
	return func(_ context.Context, _ json.RawMessage) Response {
		return Response{Result: AgentsResult{Agents: nonNil(d.agents())}}
	}
}

func handleResolve(d Deps) HandlerFunc {
	return func(_ context.Context, params json.RawMessage) Response {
		var p TextParams
		if err := decode(params, &p); err != nil {
			return Response{Error: err}
		}
		found := mention.Resolve(p.Text, agents.Mentionable(d.agents()))
		return Response{Result: ResolveResult{Mentions: nonNil(found)}}
	}
}

func handleScan(d Deps) HandlerFunc {
	return func(_ context.Context, params json.RawMessage) Response {
		var p ScanParams
		if err := decode(params, &p); err != nil {
			return Response{Error: err}
		}
		cursor := len([]rune(p.Text))
		if p.Cursor != nil {
			cursor = *p.Cursor
		}

		res := mention.Scan(p.Text, cursor)
		out := ScanResult{Active: res.Active, Query: res.Query, Anchor: res.Anchor, Candidates: []agents.Agent{}}
		if res.Active {
			c := d.MatchMode.Filter(agents.Mentionable(d.agents()), res.Query)
			if d.MaxSuggestions > 0 && len(c) > d.MaxSuggestions {
				c = c[:d.MaxSuggestions]
			}
			out.Candidates = nonNil(c)
		}
		return Response{Result: out}
	}
}

func handleRoute(d Deps, router *orchestrate.Router) HandlerFunc {
	return func(_ context.Context, params json.RawMessage) Response {
		var p TextParams
		if err := decode(params, &p); err != nil {
			return Response{Error: err}
		}
		return Response{Result: router.Route(p.Text, d.agents())}
	}
}

func handleDispatch(d Deps, router *orchestrate.Router) HandlerFunc {
	return func(_ context.Context, params json.RawMessage) Response {
		var p TextParams
		if err := decode(params, &p); err != nil {
			return Response{Error: err}
		}
		return Response{Result: dispatchResult(router.Dispatch(p.Text, d.agents()))}
	}
}

func handleSend(d Deps, router *orchestrate.Router) HandlerFunc {
	return func(ctx context.Context, params json.RawMessage) Response {
		var p TextParams
		if err := decode(params, &p); err != nil {
			return Response{Error: err}
		}

		s := chat.NewSession(chat.Config{
			Directory:        d.Directory,
			Sender:           d.Sender,
			Router:           router,
			MatchMode:        d.MatchMode,
			MaxSuggestions:   d.MaxSuggestions,
			RequireRecipient: d.RequireRecipient,
			Logger:           d.Logger,
		})
		s.Editor().SetText(p.Text, len([]rune(p.Text)))

		res, err := s.Submit(ctx)
		switch {
		case errors.Is(err, chat.ErrEmptyMessage):
			return Response{Error: &Error{Code: ErrCodeEmptyMessage, Message: err.Error()}}
		case errors.Is(err, chat.ErrNoRecipient):
			return Response{Error: &Error{Code: ErrCodeNoRecipient, Message: err.Error()}}
		case err != nil:
			return Response{Error: &Error{Code: ErrCodeDelivery, Message: err.Error()}}
		}

		out := SendResult{
			Message:        res.Message,
			DispatchResult: dispatchResult(res.Dispatch),
			Replies:        make([]ReplyInfo, 0, len(res.Replies)),
		}
		for _, r := range res.Replies {
			out.Replies = append(out.Replies, ReplyInfo{From: r.From.ID, Text: r.Text})
		}
		return Response{Result: out}
	}
}

func dispatchResult(d orchestrate.Dispatch) DispatchResult {
	return DispatchResult{
		Outcome:    d.Outcome,
		Recipients: nonNil(d.Recipients),
		Decision:   d.Decision,
	}
}

func nonNil(list []agents.Agent) []agents.Agent {
	if list == nil {
		return []agents.Agent{}
	}
	return list
}
