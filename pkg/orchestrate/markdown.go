// ABOUTME: Markdown rendering of a routing decision for the "show reasoning" surface
// ABOUTME: Output is plain Markdown; terminal styling is left to the caller

package orchestrate

import (
	"fmt"
	"strings"
)

// Markdown renders the decision as a numbered list of steps.
func (d Decision) Markdown() string {
	var b strings.Builder

	b.WriteString("## Routing\n\n")
	if d.Respondent != nil {
		fmt.Fprintf(&b, "**Respondent:** %s (`%s`)\n\n", d.Respondent.Name, d.Respondent.ID)
	} else {
		b.WriteString("**Respondent:** none\n\n")
	}

	for i, s := range d.Steps {
		fmt.Fprintf(&b, "%d. **%s** (`%s`): %s\n", i+1, s.Title, s.ID, s.Content)
	}
	return b.String()
}
