// ABOUTME: Simulated backend that acknowledges each delivery after a fixed delay
// ABOUTME: Used by the CLI chat mode when no real agent backend is configured

package chat

import (
	"context"
	"fmt"
	"time"
)

// DefaultEchoDelay matches the latency the chat surface simulates by default.
const DefaultEchoDelay = 600 * time.Millisecond

// EchoSender answers every delivery with a short acknowledgement quoting the
// message preview.
type EchoSender struct {
	Delay         time.Duration
	PreviewLength int              // 0 means 80
	Now           func() time.Time // nil means time.Now
}

// Send implements Sender. Cancelling ctx before the delay elapses yields a
// reply carrying ctx.Err().
func (s EchoSender) Send(ctx context.Context, d Delivery) (<-chan Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan Reply, 1)
	go func() {
		defer close(ch)

		reply := Reply{MessageID: d.Message.ID, From: d.Recipient}
		if s.Delay > 0 {
			timer := time.NewTimer(s.Delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				reply.Err = ctx.Err()
				reply.At = s.now()
				ch <- reply
				return
			case <-timer.C:
			}
		}

		n := s.PreviewLength
		if n <= 0 {
			n = 80
		}
		reply.Text = fmt.Sprintf("%s received: %s", d.Recipient.Name, d.Message.Preview(n))
		reply.At = s.now()
		ch <- reply
	}()
	return ch, nil
}

func (s EchoSender) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
