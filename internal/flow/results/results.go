// Package results implements the flow that submits the profile and renders career path cards.
package results

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/profile"
)

// ErrBusy is returned by Submit while a previous submission is still loading.
var ErrBusy = errors.New("submission is in progress")

type State int

const (
	Idle State = iota
	Loading
	Rendered
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Rendered:
		return "rendered"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Card is a rendered career path. TalkToCounselor opens the chat for this card's title.
type Card struct {
	Title           string
	Description     string
	SkillGaps       []string
	TalkToCounselor func() error
}

// View is the results region together with the submit control.
type View interface {
	SetSubmitEnabled(enabled bool)
	ShowLoading()
	ShowCards(cards []Card)
	ShowEmpty()
	ShowError(err error)
}

// Flow is the result-fetch state machine.
type Flow struct {
	source  career.Source
	profile *profile.Profile
	view    View
	counsel func(title string) error
	logger  *zap.Logger

	mu    sync.Mutex
	state State
	paths []career.Path
}

// New creates a flow. counsel is bound to every rendered card.
func New(source career.Source, p *profile.Profile, view View, counsel func(title string) error, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Flow{
		source:  source,
		profile: p,
		view:    view,
		counsel: counsel,
		logger:  logger,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Paths returns the paths of the last successful submission.
func (f *Flow) Paths() []career.Path {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]career.Path(nil), f.paths...)
}

// Submit sends the current skills and the given interests to the source and renders the outcome.
// The submit control is re-enabled on every exit path, including a panic while rendering.
func (f *Flow) Submit(ctx context.Context, interests string) (err error) {
	f.mu.Lock()
	if f.state == Loading {
		f.mu.Unlock()
		return ErrBusy
	}
	f.state = Loading
	f.paths = nil
	f.mu.Unlock()

	f.view.SetSubmitEnabled(false)
	defer f.view.SetSubmitEnabled(true)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering career paths: %v", r)
			f.fail(err)
		}
	}()

	f.view.ShowLoading()

	req := career.Request{Skills: f.profile.Read(), Interests: interests}
	f.logger.Debug("submitting profile",
		zap.Int("skills_length", len(req.Skills)),
		zap.Int("interests_length", len(req.Interests)),
	)

	paths, err := f.source.Fetch(ctx, req)
	if err != nil {
		err = fmt.Errorf("fetching career paths: %w", err)
		f.fail(err)
		return err
	}

	f.render(paths)

	return nil
}

func (f *Flow) render(paths []career.Path) {
	if len(paths) == 0 {
		f.view.ShowEmpty()
	} else {
		cards := make([]Card, 0, len(paths))
		for _, p := range paths {
			cards = append(cards, f.card(p))
		}
		f.view.ShowCards(cards)
	}

	f.mu.Lock()
	f.state = Rendered
	f.paths = paths
	f.mu.Unlock()

	f.logger.Info("career paths rendered", zap.Int("count", len(paths)))
}

func (f *Flow) card(p career.Path) Card {
	title := p.Title
	return Card{
		Title:       p.Title,
		Description: p.Description,
		SkillGaps:   p.Gaps(),
		TalkToCounselor: func() error {
			if f.counsel == nil {
				return nil
			}
			return f.counsel(title)
		},
	}
}

func (f *Flow) fail(err error) {
	f.mu.Lock()
	f.state = Failed
	f.paths = nil
	f.mu.Unlock()

	f.logger.Error("loading career paths failed", zap.Error(err))
	f.view.ShowError(err)
}
