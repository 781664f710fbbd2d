// Package quiz implements the aptitude quiz that appends its verdict to the skills profile.
package quiz

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/profile"
)

const (
	// DefaultPassScore is the fixed policy threshold for the strong verdict.
	// It is tied to the built-in three-question set and does not scale with the question count.
	DefaultPassScore = 2

	resultPrefix = "Aptitude Result: "
)

var (
	ErrNotActive   = errors.New("quiz is not active")
	ErrNotAnswered = errors.New("current question has not been answered")
)

type Verdict int

const (
	Developing Verdict = iota
	Strong
)

func (v Verdict) String() string {
	if v == Strong {
		return "Strong logical reasoning skills."
	}
	return "Developing logical reasoning."
}

// Session tracks progress through the question set.
type Session struct {
	Index int
	Score int
}

// Prompt is what the view shows for a single question.
type Prompt struct {
	Number   int
	Total    int
	Question string
	Options  []string
}

func (p Prompt) Position() string {
	return fmt.Sprintf("Question %d of %d", p.Number, p.Total)
}

// Feedback describes the outcome of the first selection on a question.
type Feedback struct {
	Chosen  string
	Correct bool
	Answer  string
}

func (f Feedback) Text() string {
	if f.Correct {
		return "Correct!"
	}
	return fmt.Sprintf("Incorrect. The right answer is %s.", f.Answer)
}

// Result is reported once the last question is done.
type Result struct {
	Score   int
	Total   int
	Verdict Verdict
}

func (r Result) Line() string {
	return resultPrefix + r.Verdict.String()
}

// View is the quiz surface.
type View interface {
	Open()
	Close()
	ShowQuestion(p Prompt)
	ShowFeedback(f Feedback)
	// SetOptionsEnabled toggles the answer controls of the current question.
	SetOptionsEnabled(enabled bool)
	SetNextVisible(visible bool)
	// Notify blocks until the user has acknowledged the result.
	Notify(r Result)
}

type Config struct {
	Questions []Question
	PassScore int
}

// Quiz is the aptitude quiz state machine.
type Quiz struct {
	questions []Question
	passScore int
	profile   *profile.Profile
	view      View
	logger    *zap.Logger

	mu       sync.Mutex
	active   bool
	answered bool
	session  Session
}

func New(cfg Config, p *profile.Profile, view View, logger *zap.Logger) (*Quiz, error) {
	questions := cfg.Questions
	if questions == nil {
		questions = DefaultQuestions()
	}
	if err := Validate(questions); err != nil {
		return nil, err
	}

	passScore := cfg.PassScore
	if passScore <= 0 {
		passScore = DefaultPassScore
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Quiz{
		questions: questions,
		passScore: passScore,
		profile:   p,
		view:      view,
		logger:    logger,
	}, nil
}

func (q *Quiz) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.active
}

func (q *Quiz) Session() Session {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.session
}

// Start resets the session and shows the first question.
func (q *Quiz) Start() {
	q.mu.Lock()
	q.session = Session{}
	q.active = true
	q.mu.Unlock()

	q.logger.Debug("aptitude quiz started", zap.Int("questions", len(q.questions)))

	q.view.Open()
	q.renderQuestion(0)
}

func (q *Quiz) renderQuestion(i int) {
	question := q.questions[i]

	q.mu.Lock()
	q.answered = false
	q.mu.Unlock()

	q.view.SetNextVisible(false)
	q.view.ShowQuestion(Prompt{
		Number:   i + 1,
		Total:    len(q.questions),
		Question: question.Question,
		Options:  append([]string(nil), question.Options...),
	})
	q.view.SetOptionsEnabled(true)
}

// Select records the answer for the current question. Only the first selection
// on a question counts; later ones and unknown options are ignored and false is returned.
func (q *Quiz) Select(option string) bool {
	q.mu.Lock()
	if !q.active || q.answered {
		q.mu.Unlock()
		return false
	}

	question := q.questions[q.session.Index]
	if !slices.Contains(question.Options, option) {
		q.mu.Unlock()
		return false
	}

	q.answered = true
	correct := option == question.Answer
	if correct {
		q.session.Score++
	}
	q.mu.Unlock()

	q.view.SetOptionsEnabled(false)
	q.view.ShowFeedback(Feedback{Chosen: option, Correct: correct, Answer: question.Answer})
	q.view.SetNextVisible(true)

	return true
}

// Next moves to the following question or ends the quiz after the last one.
func (q *Quiz) Next() error {
	q.mu.Lock()
	if !q.active {
		q.mu.Unlock()
		return ErrNotActive
	}
	if !q.answered {
		q.mu.Unlock()
		return ErrNotAnswered
	}

	q.session.Index++
	index := q.session.Index
	q.mu.Unlock()

	if index < len(q.questions) {
		q.renderQuestion(index)
		return nil
	}

	q.end()
	return nil
}

func (q *Quiz) end() {
	q.mu.Lock()
	q.active = false
	score := q.session.Score
	q.mu.Unlock()

	q.view.Close()

	result := Result{Score: score, Total: len(q.questions), Verdict: Developing}
	if score >= q.passScore {
		result.Verdict = Strong
	}

	q.profile.AppendLine(result.Line())

	q.logger.Info("aptitude quiz completed",
		zap.Int("score", result.Score),
		zap.Int("total", result.Total),
		zap.String("verdict", result.Verdict.String()),
	)

	q.view.Notify(result)
}
