// ABOUTME: Keyword-overlap router: picks the most relevant routable agent for a message
// ABOUTME: Emits a fixed four-step reasoning trace; pure and safe for concurrent use

package orchestrate

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
)

// Outcome says how the recipients of a message were chosen.
type Outcome string

const (
	OutcomeMentioned Outcome = "mentioned"
	OutcomeRouted    Outcome = "routed"
	OutcomeNone      Outcome = "none"
)

// Dispatch is the recipient resolution for one finalized message.
type Dispatch struct {
	Outcome    Outcome
	Mentioned  []agents.Agent // every resolved mention, repeats included
	Recipients []agents.Agent // unique recipients in first-mention order
	Decision   *Decision      // set when no explicit mention was present
}

// Router routes messages. The zero value is not usable; use NewRouter.
type Router struct {
	logger *slog.Logger
}

// discardLogger returns a no-op logger for routers created without one.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRouter creates a router. A nil logger discards output.
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = discardLogger()
	}
	return &Router{logger: logger}
}

var defaultRouter = NewRouter(nil)

// Route runs the default router.
func Route(text string, active []agents.Agent) Decision {
	return defaultRouter.Route(text, active)
}

// Route scores the routable agents in active by keyword overlap with text and
// selects the highest scorer; ties go to the earliest agent. With no keyword
// hit there is no respondent. The inputs are never modified.
func (r *Router) Route(text string, active []agents.Agent) Decision {
	hits := agents.ScoreAll(agents.Routable(active), text)

	var respondent *agents.Agent
	var best agents.Hit
	for _, h := range hits {
		if h.Score() > best.Score() {
			best = h
		}
	}
	if best.Score() > 0 {
		a := best.Agent
		a.Keywords = slices.Clone(a.Keywords)
		respondent = &a
	}

	steps := []Step{
		analysisStep(text),
		keywordStep(hits),
		selectionStep(hits, respondent),
		conclusionStep(respondent),
	}

	if respondent != nil {
		r.logger.Debug("routed message", "respondent", respondent.ID, "candidates", len(hits))
	} else {
		r.logger.Debug("no keyword match, message not routed", "agents", len(active))
	}

	return Decision{Respondent: respondent, Steps: steps}
}

// Dispatch resolves explicit mentions against the mentionable agents in list.
// When the text mentions nobody it falls back to Route over the routable agents.
func (r *Router) Dispatch(text string, list []agents.Agent) Dispatch {
	mentioned := mention.Resolve(text, agents.Mentionable(list))
	if len(mentioned) > 0 {
		r.logger.Debug("explicit mentions", "count", len(mentioned))
		return Dispatch{
			Outcome:    OutcomeMentioned,
			Mentioned:  mentioned,
			Recipients: uniqueByID(mentioned),
		}
	}

	d := r.Route(text, list)
	out := Dispatch{Outcome: OutcomeNone, Decision: &d}
	if d.Respondent != nil {
		out.Outcome = OutcomeRouted
		out.Recipients = []agents.Agent{*d.Respondent}
	}
	return out
}

func uniqueByID(list []agents.Agent) []agents.Agent {
	seen := make(map[string]bool, len(list))
	out := make([]agents.Agent, 0, len(list))
	for _, a := range list {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

func analysisStep(text string) Step {
	return Step{
		ID:      StepAnalysis,
		Title:   "Analyzing request",
		Content: fmt.Sprintf("The user asked: %q", text),
		Data:    &StepData{Query: text},
	}
}

func keywordStep(hits []agents.Hit) Step {
	step := Step{
		ID:    StepKeywordMatching,
		Title: "Matching keywords",
		Data:  &StepData{Matches: HitMap{}},
	}
	if len(hits) == 0 {
		step.Content = "No agent keywords appear in the request."
		return step
	}

	parts := make([]string, len(hits))
	for i, h := range hits {
		step.Data.Matches[h.Agent.ID] = h.Keywords
		parts[i] = fmt.Sprintf("%s (%s)", h.Agent.Name, strings.Join(h.Keywords, ", "))
	}
	step.Content = fmt.Sprintf("Keyword matches for %d %s: %s.", len(hits), plural(len(hits), "agent", "agents"), strings.Join(parts, "; "))
	return step
}

func selectionStep(hits []agents.Hit, respondent *agents.Agent) Step {
	step := Step{
		ID:    StepAgentSelection,
		Title: "Selecting agent",
		Data:  &StepData{},
	}
	switch {
	case respondent == nil:
		step.Content = "No specialized routing applies; no agent matched the request."
	case len(hits) == 1:
		step.Content = fmt.Sprintf("Selected %s, the only agent with matching keywords.", respondent.Name)
	default:
		step.Content = fmt.Sprintf("Selected %s with the highest keyword score among %d candidates.", respondent.Name, len(hits))
	}
	if respondent != nil {
		step.Data.SelectedAgents = []string{respondent.ID}
	}
	return step
}

func conclusionStep(respondent *agents.Agent) Step {
	n := 0
	content := "No agent will respond to this request."
	if respondent != nil {
		n = 1
		content = fmt.Sprintf("1 agent will respond: %s.", respondent.Name)
	}
	return Step{
		ID:      StepConclusion,
		Title:   "Conclusion",
		Content: content,
		Data:    &StepData{Responders: n},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
