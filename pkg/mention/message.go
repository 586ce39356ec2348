// ABOUTME: Outbound message handed to the send capability
// ABOUTME: Literal text plus the agents its @mentions resolved to at send time; ULID ids

package mention

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/content"
)

// Message is a finalized draft.
type Message struct {
	ID              string         `json:"id"`
	Text            string         `json:"text"`
	MentionedAgents []agents.Agent `json:"mentioned_agents"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewMessage builds a Message from text, resolving its mentions against candidates.
func NewMessage(text string, candidates []agents.Agent, now time.Time) Message {
	return Message{
		ID:              newID(now),
		Text:            text,
		MentionedAgents: Resolve(text, candidates),
		CreatedAt:       now,
	}
}

// Content returns the message text as content.
func (m Message) Content() content.Content {
	return content.String(m.Text)
}

// Preview returns a single-line preview of at most maxLength characters.
func (m Message) Preview(maxLength int) string {
	return m.Content().Preview(maxLength)
}

// newID returns a lexicographically sortable id for a message created at t.
func newID(t time.Time) string {
	if t.Before(time.UnixMilli(0)) {
		t = time.Now()
	}
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}
