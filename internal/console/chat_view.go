package console

import (
	"sync"

	"github.com/spigell/career-navigator/internal/flow/chat"
)

// ChatView prints the transcript as it grows. New entries land at the bottom of
// the terminal, which keeps the latest message in view.
type ChatView struct {
	screen *Screen

	mu       sync.Mutex
	open     bool
	triggers []chat.Trigger
}

func NewChatView(screen *Screen) *ChatView {
	return &ChatView{screen: screen}
}

func (v *ChatView) Open(title string) {
	v.mu.Lock()
	v.open = true
	v.mu.Unlock()

	v.screen.Println(titleStyle.Render("AI Counselor: " + clean(title)))
}

func (v *ChatView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.open = false
}

func (v *ChatView) ClearTranscript() {
	v.screen.Println(mutedStyle.Render("──────────"))
}

func (v *ChatView) AppendMessage(m chat.Message) {
	if m.Sender == chat.User {
		v.screen.Println(userStyle.Render("You: " + clean(m.Text)))
		return
	}

	v.screen.Println(aiStyle.Render("Counselor: " + clean(m.Text)))
}

func (v *ChatView) SetQuestions(triggers []chat.Trigger) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.triggers = triggers
}

func (v *ChatView) Triggers() []chat.Trigger {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]chat.Trigger(nil), v.triggers...)
}
