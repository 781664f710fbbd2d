// Package filtering post-processes scored career paths before they are served.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
)

// Filter represents a single step applied to scored career paths.
type Filter interface {
	Name() string
	Apply(ctx context.Context, paths []career.Path) ([]career.Path, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

func step(initial int, left []career.Path) Step {
	return Step{Initial: initial, Dropped: initial - len(left), Left: len(left)}
}

// Filtering runs filters sequentially.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Filtering{steps: steps, logger: logger}
}

// Run executes the filters in order and returns the remaining paths.
func (f *Filtering) Run(ctx context.Context, paths []career.Path) ([]career.Path, error) {
	for _, s := range f.steps {
		next, info, err := s.Apply(ctx, paths)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name(), err)
		}

		f.logger.Debug("filter step",
			zap.String("name", s.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		paths = next
	}

	return paths, nil
}

// Names lists the configured steps in order.
func (f *Filtering) Names() []string {
	names := make([]string, 0, len(f.steps))
	for _, s := range f.steps {
		names = append(names, s.Name())
	}

	return names
}
