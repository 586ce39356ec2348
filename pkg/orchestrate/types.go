// ABOUTME: Routing decision and reasoning trace types for keyword-based orchestration
// ABOUTME: Promoted to named types for easyjson codegen (zero-reflection encoding of traces)

//go:generate easyjson -all types.go

package orchestrate

import "github.com/mauromedda/pi-mention-go/pkg/agents"

// StepID identifies a reasoning step. The vocabulary is fixed.
type StepID string

const (
	StepAnalysis        StepID = "analysis"
	StepKeywordMatching StepID = "keyword-matching"
	StepAgentSelection  StepID = "agent-selection"
	StepConclusion      StepID = "conclusion"
)

// Step is one entry of the reasoning trace.
type Step struct {
	ID      StepID    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Data    *StepData `json:"data,omitempty"`
}

// StepData is the structured payload of a step. Each step fills the fields it owns.
type StepData struct {
	Query          string   `json:"query,omitempty"`
	Matches        HitMap   `json:"matches,omitempty"`
	SelectedAgents []string `json:"selectedAgents,omitempty"`
	Responders     int      `json:"responders,omitempty"`
}

// Decision is the outcome of routing one message.
type Decision struct {
	Respondent *agents.Agent `json:"respondent"`
	Steps      []Step        `json:"steps"`
}

// Step returns the step with the given id.
func (d Decision) Step(id StepID) (Step, bool) {
	for _, s := range d.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}
