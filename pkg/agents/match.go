// ABOUTME: Agent matching: substring filter for autocomplete and keyword scoring for routing
// ABOUTME: All comparisons are NFC-normalized and Unicode case-folded via golang.org/x/text

package agents

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for case-insensitive comparison.
// A fresh Caser is used per call because Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Filter returns the agents whose name, description, or category contains
// query, ignoring case. Input order is preserved. An empty query returns
// every agent. Callers are responsible for status filtering.
func Filter(list []Agent, query string) []Agent {
	if query == "" {
		return slices.Clone(list)
	}
	q := Fold(query)
	out := make([]Agent, 0, len(list))
	for _, a := range list {
		if fieldsContain(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func fieldsContain(a Agent, folded string) bool {
	return strings.Contains(Fold(a.Name), folded) ||
		strings.Contains(Fold(a.Description), folded) ||
		strings.Contains(Fold(a.Category), folded)
}

// KeywordHits returns the agent keywords that occur anywhere in message,
// ignoring case, in the agent's keyword order. Blank keywords never match.
func KeywordHits(a Agent, message string) []string {
	return keywordHits(a, Fold(message))
}

func keywordHits(a Agent, foldedMessage string) []string {
	var hits []string
	for _, kw := range a.Keywords {
		k := Fold(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(foldedMessage, k) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// Score counts the agent keywords present in message. Zero means the agent
// is not a routing candidate.
func Score(a Agent, message string) int {
	return len(KeywordHits(a, message))
}

// Hit is an agent with a positive keyword score.
type Hit struct {
	Agent    Agent
	Keywords []string
}

// Score is the number of matched keywords.
func (h Hit) Score() int {
	return len(h.Keywords)
}

// ScoreAll scores every agent against message and returns the agents with a
// positive score in input order.
func ScoreAll(list []Agent, message string) []Hit {
	folded := Fold(message)
	var hits []Hit
	for _, a := range list {
		if kws := keywordHits(a, folded); len(kws) > 0 {
			hits = append(hits, Hit{Agent: a, Keywords: kws})
		}
	}
	return hits
}

// MatchMode selects the autocomplete filtering strategy.
type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchFuzzy     MatchMode = "fuzzy"
)

// ParseMatchMode converts a config value to a MatchMode. Empty means substring.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchSubstring:
		return MatchSubstring, nil
	case MatchFuzzy:
		return MatchFuzzy, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", s)
	}
}

// Filter applies the mode's strategy.
func (m MatchMode) Filter(list []Agent, query string) []Agent {
	if m == MatchFuzzy {
		return FuzzyFilter(list, query)
	}
	return Filter(list, query)
}
