// Package page wires the result, quiz and chat flows around one shared profile.
package page

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/flow/chat"
	"github.com/spigell/career-navigator/internal/flow/quiz"
	"github.com/spigell/career-navigator/internal/flow/results"
	"github.com/spigell/career-navigator/internal/profile"
)

// ErrModalOpen is returned when a modal is requested while another one is visible.
var ErrModalOpen = errors.New("another modal is open")

type Modal int

const (
	NoModal Modal = iota
	QuizModal
	ChatModal
)

func (m Modal) String() string {
	switch m {
	case QuizModal:
		return "quiz"
	case ChatModal:
		return "chat"
	default:
		return "none"
	}
}

// Views bundles the presentation of every flow.
type Views struct {
	Results results.View
	Quiz    quiz.View
	Chat    chat.View
}

type Config struct {
	Skills     string
	Source     career.Source
	Quiz       quiz.Config
	Script     *chat.Script
	ReplyDelay time.Duration
}

// Page owns the shared profile and the three flows.
type Page struct {
	Profile *profile.Profile
	Results *results.Flow
	Quiz    *quiz.Quiz
	Chat    *chat.Chat

	logger *zap.Logger
	mu     sync.Mutex
}

func New(cfg Config, views Views, logger *zap.Logger) (*Page, error) {
	if cfg.Source == nil {
		return nil, errors.New("career source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Page{
		Profile: profile.New(cfg.Skills),
		logger:  logger,
	}

	q, err := quiz.New(cfg.Quiz, p.Profile, views.Quiz, logger.Named("quiz"))
	if err != nil {
		return nil, fmt.Errorf("building quiz: %w", err)
	}
	p.Quiz = q

	script := cfg.Script
	if script == nil {
		script = chat.DefaultScript()
	}
	p.Chat = chat.New(script, cfg.ReplyDelay, views.Chat, logger.Named("chat"))
	p.Results = results.New(cfg.Source, p.Profile, views.Results, p.OpenChat, logger.Named("results"))

	return p, nil
}

// Modal reports which modal is currently visible.
func (p *Page) Modal() Modal {
	switch {
	case p.Quiz.Active():
		return QuizModal
	case p.Chat.IsOpen():
		return ChatModal
	default:
		return NoModal
	}
}

func (p *Page) Submit(ctx context.Context, interests string) error {
	return p.Results.Submit(ctx, interests)
}

func (p *Page) StartQuiz() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m := p.Modal(); m == ChatModal {
		return fmt.Errorf("%w: %s", ErrModalOpen, m)
	}

	p.Quiz.Start()
	return nil
}

// OpenChat is bound to every rendered card's counselor trigger.
func (p *Page) OpenChat(title string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m := p.Modal(); m == QuizModal {
		return fmt.Errorf("%w: %s", ErrModalOpen, m)
	}

	p.logger.Info("opening counselor chat", zap.String("title", title))
	p.Chat.Open(title)
	return nil
}

func (p *Page) CloseChat() {
	p.Chat.Close()
}
