// ABOUTME: Resolves completed @mentions in a finalized message to concrete agents
// ABOUTME: Keeps occurrence order and repeats; unknown tokens are dropped silently

package mention

import (
	"regexp"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

// mentionRegex uses the same word class as Scan.
var mentionRegex = regexp.MustCompile(`@([\p{L}\p{N}\p{M}_]+)`)

// Tokens returns the mention tokens in text in order of occurrence, without '@'.
func Tokens(text string) []string {
	matches := mentionRegex.FindAllStringSubmatch(text, -1)
	tokens := make([]string, len(matches))
	for i, m := range matches {
		tokens[i] = m[1]
	}
	return tokens
}

// Resolve maps every @token in text to the first candidate whose name
// contains the token, ignoring case. A repeated mention yields a repeated
// agent. Tokens that match no candidate are skipped.
func Resolve(text string, candidates []agents.Agent) []agents.Agent {
	var out []agents.Agent
	for _, tok := range Tokens(text) {
		if a, ok := agents.FirstNameContaining(candidates, tok); ok {
			out = append(out, a)
		}
	}
	return out
}
