// ABOUTME: Plain-text and markdown layouts for print mode results, glamour rendering
// ABOUTME: Text output is line oriented so it can be piped into grep or cut

package print

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/content"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

func writeDecisionText(b *strings.Builder, d orchestrate.Decision) {
	if d.Respondent != nil {
		fmt.Fprintf(b, "Respondent: %s (%s)\n", d.Respondent.Name, d.Respondent.ID)
	} else {
		b.WriteString("Respondent: none\n")
	}
	for i, s := range d.Steps {
		fmt.Fprintf(b, "%d. %s: %s\n", i+1, s.Title, s.Content)
	}
}

func writeAgentsText(b *strings.Builder, list []agents.Agent) {
	if len(list) == 0 {
		b.WriteString("No agents configured.\n")
		return
	}
	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Status, strings.Join(a.Keywords, ","))
	}
	_ = tw.Flush()
}

func writeScanText(b *strings.Builder, out scanOutput, bullet string) {
	if !out.Active {
		b.WriteString("No mention at cursor.\n")
		return
	}
	fmt.Fprintf(b, "Query %q at anchor %d\n", out.Query, out.Anchor)
	if len(out.Candidates) == 0 {
		b.WriteString(bullet + "No agents found\n")
		return
	}
	if bullet == "- " {
		b.WriteByte('\n')
	}
	for _, a := range out.Candidates {
		fmt.Fprintf(b, "%s%s (%s)\n", bullet, a.Name, a.ID)
	}
}

func outcomeLine(out sendOutput) string {
	switch out.Outcome {
	case orchestrate.OutcomeMentioned:
		return "Sent to " + strings.Join(out.Recipients, ", ")
	case orchestrate.OutcomeRouted:
		return "Routed to " + strings.Join(out.Recipients, ", ")
	default:
		return "No recipient"
	}
}

func writeSendText(b *strings.Builder, out sendOutput, preview int) {
	fmt.Fprintf(b, "%s: %s\n", outcomeLine(out), content.Preview(out.Message.Text, preview))
	for _, r := range out.Replies {
		fmt.Fprintf(b, "%s: %s\n", r.Name, r.Text)
	}
	if out.Error != "" {
		fmt.Fprintf(b, "error: %s\n", out.Error)
	}
}

func sendMarkdown(out sendOutput, preview int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n> %s\n\n", outcomeLine(out), content.Preview(out.Message.Text, preview))
	for _, r := range out.Replies {
		fmt.Fprintf(&b, "- **%s**: %s\n", r.Name, r.Text)
	}
	if out.Error != "" {
		fmt.Fprintf(&b, "\n**Error:** %s\n", out.Error)
	}
	if out.Decision != nil {
		b.WriteString("\n")
		b.WriteString(out.Decision.Markdown())
	}
	return b.String()
}

// renderMarkdown styles md for the terminal, falling back to md itself.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n ")
}
