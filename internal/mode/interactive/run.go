// ABOUTME: Entry point for the interactive chat surface
// ABOUTME: Creates the tea.Program, forwards session events into it, and blocks until exit

package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/pi-mention-go/internal/chat"
)

// Options configures Run. Nil streams default to stdin and stderr.
type Options struct {
	Input  io.Reader
	Output io.Writer
}

// Run starts the chat surface for session. Blocks until the user exits or
// ctx is cancelled.
func Run(ctx context.Context, session *chat.Session, opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	p := tea.NewProgram(
		NewModel(ctx, session),
		tea.WithContext(ctx),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output),
	)

	// Events are published from Update and from delivery goroutines; Send
	// blocks until the event loop reads, so it must not run inline.
	unsubscribe := session.Subscribe(func(e chat.Event) {
		go p.Send(EventMsg{Event: e})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
