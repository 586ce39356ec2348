// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by the "config" CLI subcommand to show merged settings and the agent source

package config

import (
	"fmt"
	"strings"
)

// Explain renders the effective settings grouped by section. src is the
// agent source the settings resolve to.
func Explain(s *Settings, src AgentSource) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== Agents ===\n")
	if src.File != "" {
		fmt.Fprintf(&b, "  File:        %s\n", src.File)
	}
	if src.Dir != "" {
		fmt.Fprintf(&b, "  Dir:         %s\n", src.Dir)
	}
	b.WriteString("\n")

	b.WriteString("=== Autocomplete ===\n")
	if s.MatchMode != "" {
		fmt.Fprintf(&b, "  MatchMode:   %s\n", s.MatchMode)
	}
	if s.MaxSuggestions < 0 {
		b.WriteString("  MaxSuggestions: unlimited\n")
	} else if s.MaxSuggestions != 0 {
		fmt.Fprintf(&b, "  MaxSuggestions: %d\n", s.MaxSuggestions)
	}
	b.WriteString("\n")

	b.WriteString("=== Delivery ===\n")
	if s.PreviewLength != 0 {
		fmt.Fprintf(&b, "  PreviewLength:    %d\n", s.PreviewLength)
	}
	if s.EchoDelayMS < 0 {
		b.WriteString("  EchoDelay:        none\n")
	} else if s.EchoDelayMS != 0 {
		fmt.Fprintf(&b, "  EchoDelay:        %dms\n", s.EchoDelayMS)
	}
	if s.RequireRecipient {
		b.WriteString("  RequireRecipient: true\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Logging ===\n")
	if s.LogLevel != "" {
		fmt.Fprintf(&b, "  Level:  %s\n", s.LogLevel)
	}
	if s.LogFormat != "" {
		fmt.Fprintf(&b, "  Format: %s\n", s.LogFormat)
	}
	b.WriteString("\n")

	return b.String()
}
