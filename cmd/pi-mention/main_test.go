// ABOUTME: Tests for CLI flag parsing and command dispatch through run()
// ABOUTME: Uses temp config and agents files so no user-global state is read

package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mauromedda/pi-mention-go/internal/config"
	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

const agentsYAML = `agents:
  - id: a1
    name: Research Assistant
    keywords: [research, data]
  - id: a2
    name: Code Assistant
    keywords: [code, bug]
  - id: a3
    name: Reviewer
    status: idle
`

// fixture writes a settings file and an agents file and returns the flags
// pointing at them.
func fixture(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.json")
	if err := os.WriteFile(cfg, []byte(`{"log_level":"error"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(file, []byte(agentsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return []string{"--config", cfg, "--agents", file}
}

func runCLI(t *testing.T, stdin string, argv ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), argv, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		argv        []string
		wantCommand string
		wantFormat  string
		wantCursor  int
		wantRest    []string
	}{
		{"defaults", nil, "", "text", -1, []string{}},
		{"flags before command", []string{"--format", "json", "route", "hello", "there"}, "route", "json", -1, []string{"hello", "there"}},
		{"flags after command", []string{"scan", "--cursor", "3", "@co x"}, "scan", "text", 3, []string{"@co x"}},
		{"no command", []string{"just", "text"}, "", "text", -1, []string{"just", "text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args, err := parseArgs(tt.argv, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if args.command != tt.wantCommand || args.format != tt.wantFormat || args.cursor != tt.wantCursor {
				t.Errorf("args = %+v", args)
			}
			if diff := cmp.Diff(tt.wantRest, args.rest, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("rest mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", "--nope")
	if code != 2 || !strings.Contains(stderr, "flag provided but not defined: -nope") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", "--version")
	if code != 0 || !strings.HasPrefix(stdout, "pi-mention dev") {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_Route(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "", append(fixture(t), "route", "analyze", "this", "data")...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "Respondent: Research Assistant (a1)\n") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_DefaultCommandReadsStdin(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runCLI(t, "found a bug\n", append(fixture(t), "--format", "json")...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, `"selectedAgents":["a2"]`) {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestRun_Resolve(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", append(fixture(t), "resolve", "@rev and @code")...)
	if code != 0 || stdout != "a3\tReviewer\na2\tCode Assistant\n" {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_ScanCursor(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", append(fixture(t), "scan", "--cursor", "3", "@co and more")...)
	if code != 0 || !strings.HasPrefix(stdout, "Query \"co\" at anchor 0\n") {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_Send(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", append(fixture(t), "send", "@Code please look")...)
	want := "Sent to a2: @Code please look\nCode Assistant: Code Assistant received: @Code please look\n"
	if code != 0 || stdout != want {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_Agents(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCLI(t, "", append(fixture(t), "agents")...)
	if code != 0 || strings.Count(stdout, "\n") != 3 {
		t.Errorf("code = %d, stdout = %q", code, stdout)
	}
}

func TestRun_BadFormat(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCLI(t, "", append(fixture(t), "--format", "xml", "route", "x")...)
	if code != 1 || !strings.Contains(stderr, "unknown output format") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_MissingAgents(t *testing.T) {
	t.Parallel()

	args := fixture(t)
	args[3] = filepath.Join(t.TempDir(), "missing.yaml")
	code, _, stderr := runCLI(t, "", append(args, "route", "x")...)
	if code != 1 || !strings.Contains(stderr, "pi-mention init") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRun_Init(t *testing.T) {
	t.Parallel()

	cfg := fixture(t)[:2]
	path := filepath.Join(t.TempDir(), "team", "agents.yaml")

	code, stdout, stderr := runCLI(t, "", append(cfg, "--agents", path, "init")...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	if !strings.Contains(stdout, "Wrote 4 agents") {
		t.Errorf("stdout = %q", stdout)
	}

	got, err := config.LoadAgentsFile(path)
	if err != nil {
		t.Fatalf("LoadAgentsFile: %v", err)
	}
	if diff := cmp.Diff(starterAgents(), got); diff != "" {
		t.Errorf("written agents mismatch (-want +got):\n%s", diff)
	}
	if len(agents.Routable(got)) != 3 {
		t.Errorf("routable = %d, want 3", len(agents.Routable(got)))
	}

	// A second init refuses to overwrite without --force.
	if code, _, _ := runCLI(t, "", append(cfg, "--agents", path, "init")...); code != 1 {
		t.Errorf("second init code = %d, want 1", code)
	}
	if code, _, _ := runCLI(t, "", append(cfg, "--agents", path, "--force", "init")...); code != 0 {
		t.Errorf("forced init code = %d, want 0", code)
	}
}

func TestRun_RPC(t *testing.T) {
	t.Parallel()

	input := `{"id":"1","method":"resolve","params":{"text":"@code"}}` + "\n" +
		`{"id":"2","method":"bogus"}` + "\n"
	code, stdout, stderr := runCLI(t, input, append(fixture(t), "rpc")...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), stdout)
	}
	if !strings.Contains(lines[0], `"id":"a2"`) || !strings.Contains(lines[1], `"code":-32601`) {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRun_Config(t *testing.T) {
	t.Parallel()

	args := fixture(t)
	code, stdout, stderr := runCLI(t, "", append(args, "config")...)
	if code != 0 {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
	for _, want := range []string{"File:        " + args[3], "Level:  error", "MatchMode:   substring"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("missing %q in:\n%s", want, stdout)
		}
	}
}

func TestParseArgs_CursorHelp(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if _, err := parseArgs([]string{"-h"}, &out); err != flag.ErrHelp {
		t.Fatalf("parseArgs(-h) = %v, want flag.ErrHelp", err)
	}
	for line := range strings.SplitSeq(out.String(), "\n") {
		if strings.Contains(line, "end of text") && strings.Count(line, "default") != 1 {
			t.Errorf("cursor help mentions a default twice: %q", line)
		}
	}
	if !strings.Contains(out.String(), "-1 means end of text") {
		t.Errorf("usage = %q", out.String())
	}
}
