package console

import (
	"fmt"
	"sync"

	"github.com/spigell/career-navigator/internal/flow/quiz"
)

const resultAck = "OK"

// QuizView shows one question at a time and asks for acknowledgement of the result.
type QuizView struct {
	screen   *Screen
	prompter Prompter

	mu             sync.Mutex
	open           bool
	prompt         quiz.Prompt
	optionsEnabled bool
	nextVisible    bool
}

func NewQuizView(screen *Screen, prompter Prompter) *QuizView {
	return &QuizView{screen: screen, prompter: prompter}
}

func (v *QuizView) Open() {
	v.mu.Lock()
	v.open = true
	v.mu.Unlock()

	v.screen.Println(titleStyle.Render("Aptitude Test"))
}

func (v *QuizView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.open = false
}

func (v *QuizView) ShowQuestion(p quiz.Prompt) {
	v.mu.Lock()
	v.prompt = p
	v.mu.Unlock()

	v.screen.Println(mutedStyle.Render(p.Position()))
	v.screen.Println(headingStyle.Render(p.Question))
}

func (v *QuizView) ShowFeedback(f quiz.Feedback) {
	style := errorStyle
	if f.Correct {
		style = successStyle
	}

	v.screen.Println(style.Render(f.Text()))
}

func (v *QuizView) SetOptionsEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.optionsEnabled = enabled
}

func (v *QuizView) SetNextVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextVisible = visible
}

// Notify blocks until the user acknowledges the result.
func (v *QuizView) Notify(r quiz.Result) {
	label := fmt.Sprintf("Test complete! Score: %d/%d. Result added to skills.", r.Score, r.Total)
	v.screen.Println(successStyle.Render(r.Line()))

	if _, err := v.prompter.Select(label, []string{resultAck}); err != nil {
		v.screen.Println(mutedStyle.Render(label))
	}
}

// Options returns the answer choices while they are selectable.
func (v *QuizView) Options() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.open || !v.optionsEnabled {
		return nil
	}

	return append([]string(nil), v.prompt.Options...)
}

func (v *QuizView) Position() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.prompt.Position()
}

func (v *QuizView) NextVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.open && v.nextVisible
}
