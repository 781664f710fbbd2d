package chat

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingView struct {
	mu       sync.Mutex
	open     bool
	title    string
	messages []Message
	triggers []Trigger
	clears   int
}

func (v *recordingView) Open(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = true
	v.title = title
}

func (v *recordingView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.open = false
}

func (v *recordingView) ClearTranscript() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
	v.messages = nil
}

func (v *recordingView) AppendMessage(m Message) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, m)
}

func (v *recordingView) SetQuestions(triggers []Trigger) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.triggers = triggers
}

func testScript() *Script {
	return NewScript(
		Entry{Title: "Engineer", Question: "Role?", Answer: "You build things."},
		Entry{Title: "Engineer", Question: "First step?", Answer: "Learn Go."},
		Entry{Title: "Engineer", Question: "Interview?", Answer: "Explain channels."},
		Entry{Title: "Chef", Question: "Role?", Answer: "You cook."},
	)
}

// gatedChat returns a chat whose reply delay completes only when release is called.
func gatedChat(view View) (*Chat, func()) {
	c := New(testScript(), time.Millisecond, view, nil)
	gate := make(chan struct{})
	c.wait = func(context.Context, time.Duration) error {
		<-gate
		return nil
	}

	var once sync.Once
	return c, func() { once.Do(func() { close(gate) }) }
}

func TestOpenRendersQuestionsInOrder(t *testing.T) {
	view := &recordingView{}
	c := New(testScript(), 0, view, nil)

	c.Open("Engineer")

	if !view.open || view.title != "Engineer" {
		t.Fatalf("expected view open for Engineer, got open=%v title=%q", view.open, view.title)
	}

	expected := []string{"Role?", "First step?", "Interview?"}
	if len(view.triggers) != len(expected) {
		t.Fatalf("expected %d triggers, got %d", len(expected), len(view.triggers))
	}
	for i, q := range expected {
		if view.triggers[i].Question != q {
			t.Fatalf("trigger %d: expected %q, got %q", i, q, view.triggers[i].Question)
		}
	}

	transcript := c.Transcript()
	if len(transcript) != 1 || transcript[0].Sender != AI {
		t.Fatalf("expected a single AI greeting, got %+v", transcript)
	}
	if !strings.Contains(transcript[0].Text, "'Engineer'") {
		t.Fatalf("greeting must reference the title: %q", transcript[0].Text)
	}
}

func TestOpenUnknownTitle(t *testing.T) {
	view := &recordingView{}
	c := New(testScript(), 0, view, nil)

	c.Open("Astronaut")

	if len(view.triggers) != 0 {
		t.Fatalf("expected no triggers, got %d", len(view.triggers))
	}
	if len(c.Transcript()) != 1 {
		t.Fatalf("expected greeting only, got %+v", c.Transcript())
	}
}

func TestAskAppendsUserThenAnswer(t *testing.T) {
	view := &recordingView{}
	c, release := gatedChat(view)
	defer release()

	c.Open("Engineer")
	done := c.Ask("Engineer", "First step?")

	transcript := c.Transcript()
	if len(transcript) != 2 || transcript[1] != (Message{Sender: User, Text: "First step?"}) {
		t.Fatalf("expected user entry before the delay, got %+v", transcript)
	}

	release()
	<-done

	transcript = c.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected 3 entries, got %+v", transcript)
	}
	if transcript[2] != (Message{Sender: AI, Text: "Learn Go."}) {
		t.Fatalf("unexpected answer: %+v", transcript[2])
	}
}

func TestAskWithoutAnswerFallsBack(t *testing.T) {
	c := New(testScript(), time.Millisecond, &recordingView{}, nil)

	c.Open("Chef")
	<-c.Ask("Chef", "First step?")
	<-c.Ask("Astronaut", "Role?")

	transcript := c.Transcript()
	if len(transcript) != 5 {
		t.Fatalf("expected 5 entries, got %+v", transcript)
	}
	for _, i := range []int{2, 4} {
		if transcript[i].Sender != AI || transcript[i].Text != FallbackAnswer {
			t.Fatalf("entry %d: expected fallback, got %+v", i, transcript[i])
		}
	}
}

func TestRepliesKeepAskOrder(t *testing.T) {
	view := &recordingView{}
	c, release := gatedChat(view)

	c.Open("Engineer")
	for _, trigger := range view.triggers {
		trigger.Ask()
	}
	release()

	last := c.Ask("Engineer", "Role?")
	<-last

	got := make([]string, 0)
	for _, m := range c.Transcript() {
		if m.Sender == AI {
			got = append(got, m.Text)
		}
	}

	expected := []string{
		got[0],
		"You build things.",
		"Learn Go.",
		"Explain channels.",
		"You build things.",
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d AI entries, got %v", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("AI entry %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestReopenStartsFresh(t *testing.T) {
	view := &recordingView{}
	c := New(testScript(), time.Millisecond, view, nil)

	c.Open("Engineer")
	<-c.Ask("Engineer", "Role?")
	c.Close()

	if c.IsOpen() || view.open {
		t.Fatalf("expected chat closed")
	}
	if len(c.Transcript()) != 3 {
		t.Fatalf("close must keep the transcript, got %+v", c.Transcript())
	}

	c.Open("Engineer")
	if len(c.Transcript()) != 1 {
		t.Fatalf("reopen must start from the greeting, got %+v", c.Transcript())
	}

	c.Open("Chef")
	if len(c.Transcript()) != 1 || c.Title() != "Chef" {
		t.Fatalf("switching title must start fresh, got %+v", c.Transcript())
	}
	if view.clears != 3 {
		t.Fatalf("expected 3 clears, got %d", view.clears)
	}
	if len(view.triggers) != 1 || view.triggers[0].Question != "Role?" {
		t.Fatalf("unexpected triggers for Chef: %+v", view.triggers)
	}
}
