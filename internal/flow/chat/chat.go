// Package chat implements the scripted counselor conversation.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/utils"
)

const (
	DefaultReplyDelay = 500 * time.Millisecond

	FallbackAnswer = "I'm still learning about that topic!"
	greeting       = "Hello! I'm your AI Counselor. You're asking about the '%s' path. How can I help you?"
)

type Sender string

const (
	AI   Sender = "ai"
	User Sender = "user"
)

type Message struct {
	Sender Sender
	Text   string
}

// Trigger is a question button. Ask returns a channel closed once the reply is in the transcript.
type Trigger struct {
	Question string
	Ask      func() <-chan struct{}
}

// View is the chat surface. AppendMessage may be called from another goroutine
// and must bring the newest entry into view.
type View interface {
	Open(title string)
	Close()
	ClearTranscript()
	AppendMessage(m Message)
	SetQuestions(triggers []Trigger)
}

// Chat is the counselor conversation state machine.
type Chat struct {
	script *Script
	delay  time.Duration
	view   View
	logger *zap.Logger
	wait   func(ctx context.Context, d time.Duration) error

	mu         sync.Mutex
	open       bool
	title      string
	transcript []Message
	pending    <-chan struct{}
}

func New(script *Script, delay time.Duration, view View, logger *zap.Logger) *Chat {
	if script == nil {
		script = NewScript()
	}
	if delay <= 0 {
		delay = DefaultReplyDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Chat{
		script: script,
		delay:  delay,
		view:   view,
		logger: logger,
		wait:   utils.WaitFor,
	}
}

func (c *Chat) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.open
}

func (c *Chat) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.title
}

func (c *Chat) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Message(nil), c.transcript...)
}

// Open starts a fresh conversation about title, even when reopened for the same title.
func (c *Chat) Open(title string) {
	c.mu.Lock()
	c.open = true
	c.title = title
	c.transcript = nil
	c.mu.Unlock()

	c.view.Open(title)
	c.view.ClearTranscript()
	c.appendMessage(Message{Sender: AI, Text: fmt.Sprintf(greeting, title)})

	questions := c.script.Questions(title)
	triggers := make([]Trigger, 0, len(questions))
	for _, q := range questions {
		question := q
		triggers = append(triggers, Trigger{
			Question: question,
			Ask: func() <-chan struct{} {
				return c.Ask(title, question)
			},
		})
	}
	c.view.SetQuestions(triggers)

	c.logger.Debug("counselor chat opened",
		zap.String("title", title),
		zap.Int("questions", len(triggers)),
	)
}

// Ask appends the question now and the answer after the reply delay. Replies
// are applied in the order they were asked and cannot be cancelled.
func (c *Chat) Ask(title, question string) <-chan struct{} {
	c.appendMessage(Message{Sender: User, Text: question})

	answer, ok := c.script.Answer(title, question)
	if !ok {
		c.logger.Debug("no scripted answer",
			zap.String("title", title),
			zap.String("question", question),
		)
		answer = FallbackAnswer
	}

	done := make(chan struct{})

	c.mu.Lock()
	previous := c.pending
	c.pending = done
	c.mu.Unlock()

	go func() {
		defer close(done)

		// the delay is not tied to any caller context
		_ = c.wait(context.Background(), c.delay)
		if previous != nil {
			<-previous
		}

		c.appendMessage(Message{Sender: AI, Text: answer})
	}()

	return done
}

// Close hides the surface. The transcript is kept until the next Open.
func (c *Chat) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()

	c.view.Close()
}

func (c *Chat) appendMessage(m Message) {
	c.mu.Lock()
	c.transcript = append(c.transcript, m)
	c.mu.Unlock()

	c.view.AppendMessage(m)
}
