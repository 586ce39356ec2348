// ABOUTME: Tests for the chat session: submit, dispatch outcomes, events, transcript, delivery
// ABOUTME: goleak verifies asynchronous delivery leaves no goroutines behind

package chat

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/mauromedda/pi-mention-go/pkg/agents"
	"github.com/mauromedda/pi-mention-go/pkg/mention"
	"github.com/mauromedda/pi-mention-go/pkg/orchestrate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testDirectory() agents.StaticDirectory {
	return agents.StaticDirectory{
		{ID: "a1", Name: "Research Assistant", Keywords: []string{"research", "data"}, Status: agents.StatusActive},
		{ID: "a2", Name: "Code Assistant", Keywords: []string{"code", "bug"}, Status: agents.StatusActive},
		{ID: "a3", Name: "Reviewer", Keywords: []string{"review"}, Status: agents.StatusIdle},
	}
}

// eventLog collects events from concurrent publishers.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) handle(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) types() []EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, et := range l.types() {
		if et == t {
			n++
		}
	}
	return n
}

func newTestSession(t *testing.T, cfg Config) (*Session, *eventLog) {
	t.Helper()
	if cfg.Directory == nil {
		cfg.Directory = testDirectory()
	}
	cfg.Now = func() time.Time { return fixedNow }
	s := NewSession(cfg)
	l := &eventLog{}
	s.Subscribe(l.handle)
	return s, l
}

func TestSession_AcceptPublishesMention(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{})
	s.Editor().Insert("@co")
	if !s.HandleKey(mention.KeyEnter) {
		t.Fatal("Enter should be consumed with an open list")
	}

	if got := s.Editor().Text(); got != "@Code Assistant " {
		t.Errorf("Text() = %q", got)
	}
	if diff := cmp.Diff([]EventType{EventMentionAccepted}, events.types()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if a := events.events[0].Agent; a == nil || a.ID != "a2" {
		t.Errorf("accepted agent = %v, want a2", a)
	}
}

func TestSession_NavigationDoesNotPublish(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{})
	s.Editor().Insert("@")
	s.HandleKey(mention.KeyDown)
	s.HandleKey(mention.KeyEscape)

	if len(events.types()) != 0 {
		t.Errorf("unexpected events %v", events.types())
	}
	if s.HandleKey(mention.KeyEnter) {
		t.Error("Enter after Escape should fall through to the caller")
	}
}

func TestSession_SelectPublishesMention(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{})
	s.Editor().Insert("hi @")
	if !s.Select(2) {
		t.Fatal("Select(2) = false")
	}
	if s.Select(0) {
		t.Error("Select on a closed list should fail")
	}
	if got := s.Editor().Text(); got != "hi @Reviewer " {
		t.Errorf("Text() = %q", got)
	}
	if events.count(EventMentionAccepted) != 1 {
		t.Errorf("events = %v", events.types())
	}
}

func TestSession_SubmitEmpty(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{})
	s.Editor().SetText("   \n", 2)

	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("Submit() error = %v, want ErrEmptyMessage", err)
	}
	if s.Editor().Text() != "   \n" {
		t.Error("blank draft should be left in place")
	}
	if len(events.types()) != 0 || len(s.Transcript()) != 0 {
		t.Error("blank submit should have no effects")
	}
}

func TestSession_SubmitRequireRecipient(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t, Config{RequireRecipient: true})
	s.Editor().SetText("Hello, how are you?", 19)

	res, err := s.Submit(context.Background())
	if !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("Submit() error = %v, want ErrNoRecipient", err)
	}
	if res.Dispatch.Outcome != orchestrate.OutcomeNone {
		t.Errorf("Outcome = %q", res.Dispatch.Outcome)
	}
	if s.Editor().Text() != "Hello, how are you?" {
		t.Error("draft should be kept when no recipient is found")
	}
}

func TestSession_SubmitWithoutRecipientAllowed(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{Sender: EchoSender{}})
	s.Editor().SetText("Hello, how are you?", 19)

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(res.Replies) != 0 || res.Dispatch.Outcome != orchestrate.OutcomeNone {
		t.Errorf("unexpected result %+v", res)
	}
	if diff := cmp.Diff([]EventType{EventMessageSent}, events.types()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if s.Editor().Text() != "" {
		t.Error("editor should reset after send")
	}
}

func TestSession_SubmitMentioned(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{Sender: EchoSender{}})
	s.Editor().Insert("@res")
	s.HandleKey(mention.KeyEnter)
	s.Editor().Insert("and @code please look")

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if res.Message.Text != "@Research Assistant and @code please look" {
		t.Errorf("Message.Text = %q", res.Message.Text)
	}
	if !res.Message.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt = %v", res.Message.CreatedAt)
	}
	if res.Dispatch.Outcome != orchestrate.OutcomeMentioned {
		t.Errorf("Outcome = %q", res.Dispatch.Outcome)
	}

	var from []string
	for _, r := range res.Replies {
		from = append(from, r.From.ID)
		if r.MessageID != res.Message.ID {
			t.Errorf("reply MessageID = %q, want %q", r.MessageID, res.Message.ID)
		}
	}
	if diff := cmp.Diff([]string{"a1", "a2"}, from); diff != "" {
		t.Errorf("reply order mismatch (-want +got):\n%s", diff)
	}

	if events.count(EventMessageSent) != 1 || events.count(EventReplyReceived) != 2 || events.count(EventMessageRouted) != 0 {
		t.Errorf("events = %v", events.types())
	}
	if n := len(s.Transcript()); n != 3 {
		t.Errorf("len(Transcript()) = %d, want 3", n)
	}
}

func TestSession_SubmitRouted(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{Sender: EchoSender{}})
	s.Editor().SetText("Can you help me analyze this data?", 0)

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if res.Dispatch.Outcome != orchestrate.OutcomeRouted || res.Dispatch.Decision == nil {
		t.Fatalf("Dispatch = %+v", res.Dispatch)
	}
	if len(res.Replies) != 1 || res.Replies[0].From.ID != "a1" {
		t.Errorf("Replies = %+v", res.Replies)
	}
	want := "Research Assistant received: Can you help me analyze this data?"
	if res.Replies[0].Text != want {
		t.Errorf("reply text = %q, want %q", res.Replies[0].Text, want)
	}
	if events.count(EventMessageRouted) != 1 {
		t.Errorf("events = %v", events.types())
	}

	tr := s.Transcript()
	if tr[0].From != nil || tr[1].From == nil || tr[1].From.ID != "a1" {
		t.Errorf("transcript = %+v", tr)
	}
}

func TestSession_DeliveryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	sender := SenderFunc(func(ctx context.Context, d Delivery) (<-chan Reply, error) {
		if d.Recipient.ID == "a2" {
			return nil, boom
		}
		return EchoSender{}.Send(ctx, d)
	})

	s, events := newTestSession(t, Config{Sender: sender})
	s.Editor().SetText("@Code @Research", 0)

	_, err := s.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v, want %v", err, boom)
	}
	if events.count(EventDeliveryFailed) < 1 {
		t.Errorf("events = %v", events.types())
	}
	for _, e := range events.events {
		if e.Type == EventDeliveryFailed && e.Agent.ID == "a2" && !errors.Is(e.Err, boom) {
			t.Errorf("delivery_failed Err = %v", e.Err)
		}
	}
}

func TestSession_ClosedChannelIsNoReply(t *testing.T) {
	t.Parallel()

	sender := SenderFunc(func(_ context.Context, _ Delivery) (<-chan Reply, error) {
		ch := make(chan Reply)
		close(ch)
		return ch, nil
	})
	s, events := newTestSession(t, Config{Sender: sender})
	s.Editor().SetText("@Reviewer thoughts?", 0)

	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(res.Replies) != 0 || events.count(EventReplyReceived) != 0 {
		t.Errorf("expected no replies, got %+v", res.Replies)
	}
}

func TestSession_ContextCancelled(t *testing.T) {
	t.Parallel()

	s, events := newTestSession(t, Config{Sender: EchoSender{Delay: time.Hour}})
	s.Editor().SetText("@Code hello", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Submit() error = %v, want deadline exceeded", err)
	}
	if events.count(EventDeliveryFailed) != 1 {
		t.Errorf("events = %v", events.types())
	}
}

func TestSession_DirectoryReadOnEverySubmit(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	list := []agents.Agent{{ID: "x", Name: "Xavier", Status: agents.StatusActive}}
	dir := agents.DirectoryFunc(func() []agents.Agent {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(list)
	})

	s, _ := newTestSession(t, Config{Directory: dir})
	s.Editor().SetText("@Yolanda hi", 0)
	res, _ := s.Submit(context.Background())
	if res.Dispatch.Outcome != orchestrate.OutcomeNone {
		t.Fatalf("Outcome = %q before the agent exists", res.Dispatch.Outcome)
	}

	mu.Lock()
	list = append(list, agents.Agent{ID: "y", Name: "Yolanda", Status: agents.StatusActive})
	mu.Unlock()

	s.Editor().SetText("@Yolanda hi", 0)
	res, _ = s.Submit(context.Background())
	if res.Dispatch.Outcome != orchestrate.OutcomeMentioned {
		t.Errorf("Outcome = %q after the agent was added", res.Dispatch.Outcome)
	}
}

func TestSession_SubmitUsesOneDirectorySnapshot(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	calls := 0
	dir := agents.DirectoryFunc(func() []agents.Agent {
		mu.Lock()
		defer mu.Unlock()
		calls++
		id := "first"
		if calls > 1 {
			id = "later"
		}
		return []agents.Agent{{ID: id, Name: "Code Assistant", Status: agents.StatusActive}}
	})

	s, _ := newTestSession(t, Config{Directory: dir})
	s.Editor().SetText("@Code please look", 0)
	res, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := agents.IDs(res.Dispatch.Mentioned)
	if diff := cmp.Diff(want, agents.IDs(res.Message.MentionedAgents)); diff != "" {
		t.Errorf("message and dispatch disagree (-dispatch +message):\n%s", diff)
	}
	if s.Editor().Text() != "" {
		t.Errorf("draft = %q after submit, want empty", s.Editor().Text())
	}
}
