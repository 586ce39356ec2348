// ABOUTME: Tests for send-time mention resolution
// ABOUTME: Verifies occurrence order, repeated mentions, silent drops, and the round-trip property

package mention

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
)

func TestTokens(t *testing.T) {
	t.Parallel()

	got := Tokens("@alpha, then @beta_2 and @ alone, mail@host")
	want := []string{"alpha", "beta_2", "host"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	candidates := agents.Mentionable(testDirectory())

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no mentions", "plain text", nil},
		{"single mention", "hey @Research look", []string{"a1"}},
		{"order of occurrence", "@Code then @Research", []string{"a2", "a1"}},
		{"repeats preserved", "@Code @Research @code", []string{"a2", "a1", "a2"}},
		{"first containing name wins", "@Assistant", []string{"a1"}},
		{"unknown dropped", "@Ghost and @Reviewer", []string{"a3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Resolve(tt.text, candidates)
			var ids []string
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("Resolve(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestResolve_DecomposedName(t *testing.T) {
	t.Parallel()

	candidates := []agents.Agent{{ID: "jose", Name: "Jos\u00e9 Helper", Status: agents.StatusActive}}

	if diff := cmp.Diff([]string{"Jose\u0301"}, Tokens("ping @Jose\u0301 now")); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
	got := Resolve("ping @Jose\u0301 now", candidates)
	if len(got) != 1 || got[0].ID != "jose" {
		t.Errorf("Resolve = %+v, want jose", got)
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	t.Parallel()

	candidates := []agents.Agent{
		{ID: "r", Name: "Research", Status: agents.StatusActive},
		{ID: "c", Name: "Coder", Status: agents.StatusActive},
		{ID: "w", Name: "Writer", Status: agents.StatusActive},
	}
	sequence := []string{"r", "c", "r", "w", "c"}

	var b strings.Builder
	for i, id := range sequence {
		a, _ := agents.FindByID(candidates, id)
		b.WriteString("@" + a.Name)
		if i%2 == 0 {
			b.WriteString(", please help. ")
		} else {
			b.WriteString(" ")
		}
	}

	msg := NewMessage(b.String(), candidates, time.Now())
	if diff := cmp.Diff(sequence, agents.IDs(msg.MentionedAgents)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMessage_Preview(t *testing.T) {
	t.Parallel()

	msg := NewMessage("line one is long enough\nline two", nil, time.Now())
	if got := msg.Preview(10); got != "line on..." {
		t.Errorf("Preview = %q, want %q", got, "line on...")
	}
}

func TestNewMessage_IDsAreOrdered(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := NewMessage("a", nil, t0)
	b := NewMessage("b", nil, t0.Add(time.Second))

	if a.ID >= b.ID {
		t.Errorf("expected %q < %q", a.ID, b.ID)
	}
}
