// ABOUTME: Send boundary: hands a finalized message to one recipient agent
// ABOUTME: The backend answers asynchronously on a reply channel

package chat

import (
	"context"
	"time"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// Delivery is one message addressed to one recipient.
type Delivery struct {
	Message   mention.Message
	Recipient agents.Agent
	Outcome   orchestrate.Outcome
}

// Reply is a backend response to a delivery. Err is set when the backend
// accepted the delivery but failed to answer.
type Reply struct {
	MessageID string
	From      agents.Agent
	Text      string
	At        time.Time
	Err       error
}

// Sender delivers messages to agents. Send returns once the delivery is
// accepted; the channel yields at most one reply and is then closed.
// A channel closed without a value means the agent chose not to answer.
type Sender interface {
	Send(ctx context.Context, d Delivery) (<-chan Reply, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, d Delivery) (<-chan Reply, error)

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, d Delivery) (<-chan Reply, error) {
	return f(ctx, d)
}
