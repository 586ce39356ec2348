// ABOUTME: E2E tests for the non-interactive commands run as a subprocess
// ABOUTME: Checks stdout of route, resolve and send, and that agent file edits are picked up

package e2e

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

func TestPrint_RouteJSON(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	out := newWorkspace(t).runPrint(t, "", "--format", "json", "route", "there is a bug in my code")

	var d orchestrate.Decision
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if d.Respondent == nil || d.Respondent.ID != "code" {
		t.Errorf("respondent = %+v", d.Respondent)
	}
}

func TestPrint_StdinDefaultsToRoute(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	out := newWorkspace(t).runPrint(t, "make a plan\n")
	// The planner is idle: mentionable but never routed to.
	if !strings.HasPrefix(out, "Respondent: none\n") {
		t.Errorf("stdout = %q", out)
	}
}

func TestPrint_AgentEditsPickedUp(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	w := newWorkspace(t)
	if out := w.runPrint(t, "", "resolve", "@tester"); out != "No agents mentioned.\n" {
		t.Fatalf("stdout = %q", out)
	}

	writeFile(t, w.agents, agentsYAML+"  - id: qa\n    name: Tester\n")
	if out := w.runPrint(t, "", "resolve", "@tester"); out != "qa\tTester\n" {
		t.Errorf("stdout = %q", out)
	}
}
