// ABOUTME: Tests for human-readable config explanation rendering
// ABOUTME: Covers empty, full, and partial settings scenarios

package config

import (
	"strings"
	"testing"
)

func TestExplain_EmptySettings(t *testing.T) {
	t.Parallel()

	result := Explain(nil, AgentSource{})

	for _, header := range []string{"Agents", "Autocomplete", "Delivery", "Logging"} {
		if !strings.Contains(result, "=== "+header+" ===") {
			t.Errorf("missing %s section header", header)
		}
	}
	if strings.Contains(result, "MatchMode") {
		t.Error("zero settings should not list values")
	}
}

func TestExplain_FullSettings(t *testing.T) {
	t.Parallel()

	s := &Settings{
		MatchMode:        "fuzzy",
		MaxSuggestions:   5,
		PreviewLength:    40,
		EchoDelayMS:      250,
		RequireRecipient: true,
		LogLevel:         "debug",
		LogFormat:        "json",
	}
	result := Explain(s, AgentSource{File: "/team/agents.yaml"})

	for _, want := range []string{
		"File:        /team/agents.yaml",
		"MatchMode:   fuzzy",
		"MaxSuggestions: 5",
		"PreviewLength:    40",
		"EchoDelay:        250ms",
		"RequireRecipient: true",
		"Level:  debug",
		"Format: json",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in:\n%s", want, result)
		}
	}
}

func TestExplain_NegativeValues(t *testing.T) {
	t.Parallel()

	result := Explain(&Settings{MaxSuggestions: -1, EchoDelayMS: -1}, AgentSource{Dir: "/agents"})

	for _, want := range []string{"Dir:         /agents", "MaxSuggestions: unlimited", "EchoDelay:        none"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in:\n%s", want, result)
		}
	}
	if strings.Contains(result, "File:") {
		t.Error("directory source should not list a file")
	}
}

func TestExplain_LoadedDefaults(t *testing.T) {
	t.Parallel()

	s, err := LoadWithHome(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithHome: %v", err)
	}
	result := Explain(s, AgentSource{File: "agents.yaml"})

	if !strings.Contains(result, "MaxSuggestions: 8") || !strings.Contains(result, "EchoDelay:        600ms") {
		t.Errorf("defaults missing:\n%s", result)
	}
}
