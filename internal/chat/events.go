// ABOUTME: Session events published on the chat bus
// ABOUTME: One struct for every event kind; unused fields stay nil

package chat

import (
	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

// EventType identifies a session event.
type EventType string

const (
	EventMentionAccepted EventType = "mention_accepted"
	EventMessageSent     EventType = "message_sent"
	EventMessageRouted   EventType = "message_routed"
	EventReplyReceived   EventType = "reply_received"
	EventDeliveryFailed  EventType = "delivery_failed"
)

// Event is published by a Session.
//
//	mention_accepted: Agent
//	message_sent:     Message, Dispatch
//	message_routed:   Message, Dispatch (Outcome routed, Decision set)
//	reply_received:   Message, Agent, Reply
//	delivery_failed:  Message, Agent, Err
type Event struct {
	Type     EventType
	Agent    *agents.Agent
	Message  *mention.Message
	Dispatch *orchestrate.Dispatch
	Reply    *Reply
	Err      error
}
