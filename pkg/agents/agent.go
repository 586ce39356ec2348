// ABOUTME: Agent reference record, availability status, and the agent directory boundary
// ABOUTME: Status decides who may be mentioned (active, idle) and who may be routed to (active)

package agents

import (
	"fmt"
	"slices"
	"strings"
)

// Status is the availability of an agent.
type Status string

const (
	StatusActive   Status = "active"
	StatusIdle     Status = "idle"
	StatusInactive Status = "inactive"
)

// ParseStatus converts a config value to a Status. An empty value means active.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusIdle:
		return StatusIdle, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("unknown agent status %q", s)
	}
}

// IsMentionable reports whether agents in this status are offered for explicit mention.
func (s Status) IsMentionable() bool {
	return s == StatusActive || s == StatusIdle
}

// IsRoutable reports whether agents in this status may receive automatically routed messages.
func (s Status) IsRoutable() bool {
	return s == StatusActive
}

// Agent is a read-only reference to a chat agent.
type Agent struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Status      Status   `json:"status" yaml:"status"`
}

// Mentionable returns the agents that can be offered as mention candidates, in order.
func Mentionable(list []Agent) []Agent {
	return keep(list, Status.IsMentionable)
}

// Routable returns the agents eligible for automatic routing, in order.
func Routable(list []Agent) []Agent {
	return keep(list, Status.IsRoutable)
}

func keep(list []Agent, pred func(Status) bool) []Agent {
	out := make([]Agent, 0, len(list))
	for _, a := range list {
		if pred(a.Status) {
			out = append(out, a)
		}
	}
	return out
}

// FindByID returns the agent with the given id.
func FindByID(list []Agent, id string) (Agent, bool) {
	i := slices.IndexFunc(list, func(a Agent) bool { return a.ID == id })
	if i < 0 {
		return Agent{}, false
	}
	return list[i], true
}

// FindByName returns the first agent whose name equals name, ignoring case.
func FindByName(list []Agent, name string) (Agent, bool) {
	folded := Fold(name)
	i := slices.IndexFunc(list, func(a Agent) bool { return Fold(a.Name) == folded })
	if i < 0 {
		return Agent{}, false
	}
	return list[i], true
}

// FirstNameContaining returns the first agent whose name contains token, ignoring case.
func FirstNameContaining(list []Agent, token string) (Agent, bool) {
	folded := Fold(token)
	i := slices.IndexFunc(list, func(a Agent) bool { return strings.Contains(Fold(a.Name), folded) })
	if i < 0 {
		return Agent{}, false
	}
	return list[i], true
}

// IDs returns the ids of list in order.
func IDs(list []Agent) []string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids
}

// Directory supplies the current agent list. Implementations are consulted
// before every autocomplete or routing operation; callers never cache the result.
type Directory interface {
	Agents() []Agent
}

// StaticDirectory is a fixed in-memory agent list.
type StaticDirectory []Agent

// Agents returns a copy of the list.
func (d StaticDirectory) Agents() []Agent {
	return slices.Clone([]Agent(d))
}

// DirectoryFunc adapts a function to the Directory interface.
type DirectoryFunc func() []Agent

// Agents calls f.
func (f DirectoryFunc) Agents() []Agent {
	return f()
}
