// ABOUTME: Params and result payloads of the RPC methods
// ABOUTME: Agents are encoded with their config field names; decisions use the easyjson codec

package rpc

import (
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// TextParams is the payload of resolve, route, dispatch and send.
type TextParams struct {
	Text string `json:"text"`
}

// ScanParams is the payload of scan. A missing cursor means the end of text.
type ScanParams struct {
	Text   string `json:"text"`
	Cursor *int   `json:"cursor,omitempty"`
}

// AgentsResult is the response payload for the agents method.
type AgentsResult struct {
	Agents []agents.Agent `json:"agents"`
}

// ResolveResult is the response payload for the resolve method.
type ResolveResult struct {
	Mentions []agents.Agent `json:"mentions"`
}

// ScanResult is the response payload for the scan method.
type ScanResult struct {
	Active     bool           `json:"active"`
	Query      string         `json:"query"`
	Anchor     int            `json:"anchor"`
	Candidates []agents.Agent `json:"candidates"`
}

// DispatchResult is the response payload for the dispatch method.
type DispatchResult struct {
	Outcome    orchestrate.Outcome   `json:"outcome"`
	Recipients []agents.Agent        `json:"recipients"`
	Decision   *orchestrate.Decision `json:"decision,omitempty"`
}

// ReplyInfo is one agent reply.
type ReplyInfo struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// SendResult is the response payload for the send method.
type SendResult struct {
	Message mention.Message `json:"message"`
	DispatchResult
	Replies []ReplyInfo `json:"replies"`
}
