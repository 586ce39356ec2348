// ABOUTME: RPC request/response envelopes for editor integrations
// ABOUTME: One JSON object per line in each direction; params are decoded by each method

package rpc

import "encoding/json"

// Request represents an RPC request from an external client.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents an RPC response to an external client.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// Error represents an RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Methods
const (
	MethodAgents   = "agents"
	MethodResolve  = "resolve"
	MethodScan     = "scan"
	MethodRoute    = "route"
	MethodDispatch = "dispatch"
	MethodSend     = "send"
)
