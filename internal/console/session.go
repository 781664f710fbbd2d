package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/page"
)

const (
	MenuFindPath    = "Find my path"
	MenuAptitude    = "Take the aptitude test"
	MenuCounselor   = "Talk to AI Counselor"
	MenuShowProfile = "Show my skills"
	MenuQuit        = "Quit"

	PromptNext      = "Next"
	PromptCloseChat = "Close chat"
	PromptBack      = "back"

	// promptui inputs are single line, so skill lines are edited joined by this separator.
	lineSeparator = " | "
)

// Session drives a page from the terminal.
type Session struct {
	Page *page.Page

	results  *ResultsView
	quiz     *QuizView
	chat     *ChatView
	screen   *Screen
	prompter Prompter
	logger   *zap.Logger
}

func NewSession(cfg page.Config, prompter Prompter, out io.Writer, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	screen := NewScreen(out)
	s := &Session{
		results:  NewResultsView(screen),
		quiz:     NewQuizView(screen, prompter),
		chat:     NewChatView(screen),
		screen:   screen,
		prompter: prompter,
		logger:   logger,
	}

	p, err := page.New(cfg, page.Views{Results: s.results, Quiz: s.quiz, Chat: s.chat}, logger)
	if err != nil {
		return nil, err
	}
	s.Page = p

	return s, nil
}

// Run shows the main menu until the user quits or aborts a prompt.
func (s *Session) Run(ctx context.Context) error {
	for {
		items := []string{MenuFindPath, MenuAptitude}
		if len(s.results.Cards()) > 0 {
			items = append(items, MenuCounselor)
		}
		items = append(items, MenuShowProfile, MenuQuit)

		action, err := s.prompter.Select("Career Navigator", items)
		if err != nil {
			return s.exit(err)
		}

		if err := s.handle(ctx, action); err != nil {
			return s.exit(err)
		}
		if action == MenuQuit {
			return nil
		}
	}
}

func (s *Session) handle(ctx context.Context, action string) error {
	switch action {
	case MenuFindPath:
		return s.findPath(ctx)
	case MenuAptitude:
		return s.takeQuiz()
	case MenuCounselor:
		return s.counsel()
	case MenuShowProfile:
		s.showProfile()
		return nil
	case MenuQuit:
		s.logger.Info("exiting", zap.String("reason", "quit requested"))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *Session) findPath(ctx context.Context) error {
	if !s.results.SubmitEnabled() {
		s.screen.Println(mutedStyle.Render(loadingText))
		return nil
	}

	current := strings.ReplaceAll(s.Page.Profile.Read(), "\n", lineSeparator)
	skills, err := s.prompter.Input("Your skills", current)
	if err != nil {
		return err
	}
	interests, err := s.prompter.Input("Your interests", "")
	if err != nil {
		return err
	}

	s.Page.Profile.Set(strings.ReplaceAll(skills, lineSeparator, "\n"))

	// failures are already shown in the results region
	if err := s.Page.Submit(ctx, interests); err != nil {
		s.logger.Debug("submit finished with error", zap.Error(err))
	}

	return nil
}

func (s *Session) takeQuiz() error {
	if err := s.Page.StartQuiz(); err != nil {
		s.screen.Println(errorStyle.Render(err.Error()))
		return nil
	}

	for s.Page.Quiz.Active() {
		if options := s.quiz.Options(); len(options) > 0 {
			answer, err := s.prompter.Select(s.quiz.Position(), options)
			if err != nil {
				return err
			}
			s.Page.Quiz.Select(answer)
			continue
		}

		if !s.quiz.NextVisible() {
			return errors.New("quiz has neither options nor next step")
		}
		if _, err := s.prompter.Select("Continue", []string{PromptNext}); err != nil {
			return err
		}
		if err := s.Page.Quiz.Next(); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) counsel() error {
	cards := s.results.Cards()
	titles := make([]string, 0, len(cards)+1)
	for _, card := range cards {
		titles = append(titles, card.Title)
	}

	title, err := s.prompter.Select("Choose a career path", append(titles, PromptBack))
	if err != nil {
		return err
	}
	if title == PromptBack {
		return nil
	}

	for _, card := range cards {
		if card.Title != title {
			continue
		}
		if err := card.TalkToCounselor(); err != nil {
			s.screen.Println(errorStyle.Render(err.Error()))
			return nil
		}
		break
	}

	return s.chatLoop()
}

func (s *Session) chatLoop() error {
	defer s.Page.CloseChat()

	for {
		triggers := s.chat.Triggers()
		items := make([]string, 0, len(triggers)+1)
		for _, trigger := range triggers {
			items = append(items, trigger.Question)
		}

		selected, err := s.prompter.Select("Ask the counselor", append(items, PromptCloseChat))
		if err != nil {
			return err
		}
		if selected == PromptCloseChat {
			return nil
		}

		for _, trigger := range triggers {
			if trigger.Question == selected {
				s.screen.Println(mutedStyle.Render("Counselor is typing..."))
				<-trigger.Ask()
				break
			}
		}
	}
}

func (s *Session) showProfile() {
	lines := s.Page.Profile.Lines()
	if len(lines) == 0 {
		s.screen.Println(mutedStyle.Render("No skills entered yet."))
		return
	}

	for _, line := range lines {
		s.screen.Println("  • " + clean(line))
	}
}

func (s *Session) exit(err error) error {
	if isExit(err) {
		s.logger.Info("exiting", zap.String("reason", "prompt aborted"))
		return nil
	}

	return err
}
