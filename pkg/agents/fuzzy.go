// ABOUTME: Opt-in fuzzy ranking of mention candidates backed by sahilm/fuzzy
// ABOUTME: Fuzzy name hits come first by score; substring hits on other fields follow in input order

package agents

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// nameSource exposes agent names to the fuzzy matcher.
type nameSource []Agent

func (s nameSource) String(i int) string { return s[i].Name }
func (s nameSource) Len() int            { return len(s) }

// FuzzyFilter ranks agents whose name fuzzily matches query, best first
// (ties keep input order), then appends the remaining agents whose
// description or category contains query. An empty query returns every agent.
func FuzzyFilter(list []Agent, query string) []Agent {
	if query == "" {
		return slices.Clone(list)
	}

	matches := fuzzy.FindFrom(query, nameSource(list))
	seen := make(map[int]bool, len(matches))
	out := make([]Agent, 0, len(list))
	for _, m := range matches {
		seen[m.Index] = true
		out = append(out, list[m.Index])
	}

	q := Fold(query)
	for i, a := range list {
		if !seen[i] && fieldsContain(a, q) {
			out = append(out, a)
		}
	}
	return out
}
