package filtering

import (
	"context"
	"strings"

	"github.com/spigell/career-navigator/internal/career"
)

type normalizeFilter struct{}

// NewNormalize trims text fields, drops blank skill gaps and replaces missing gaps with an empty list.
func NewNormalize() Filter {
	return normalizeFilter{}
}

func (normalizeFilter) Name() string { return "normalize" }

func (normalizeFilter) Apply(_ context.Context, paths []career.Path) ([]career.Path, Step, error) {
	out := make([]career.Path, 0, len(paths))
	for _, p := range paths {
		gaps := make([]string, 0, len(p.SkillGaps))
		for _, gap := range p.SkillGaps {
			if gap = strings.TrimSpace(gap); gap != "" {
				gaps = append(gaps, gap)
			}
		}

		out = append(out, career.Path{
			Title:       strings.TrimSpace(p.Title),
			Description: strings.TrimSpace(p.Description),
			SkillGaps:   gaps,
		})
	}

	return out, step(len(paths), out), nil
}

type untitledFilter struct{}

// NewUntitled drops paths without a title, since a card without one cannot open a chat.
func NewUntitled() Filter {
	return untitledFilter{}
}

func (untitledFilter) Name() string { return "untitled" }

func (untitledFilter) Apply(_ context.Context, paths []career.Path) ([]career.Path, Step, error) {
	out := make([]career.Path, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p.Title) == "" {
			continue
		}
		out = append(out, p)
	}

	return out, step(len(paths), out), nil
}

type dedupeFilter struct{}

// NewDedupe keeps the first path for every case-insensitive title.
func NewDedupe() Filter {
	return dedupeFilter{}
}

func (dedupeFilter) Name() string { return "dedupe" }

func (dedupeFilter) Apply(_ context.Context, paths []career.Path) ([]career.Path, Step, error) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]career.Path, 0, len(paths))
	for _, p := range paths {
		key := strings.ToLower(p.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	return out, step(len(paths), out), nil
}

type limitFilter struct {
	size int
}

// NewLimit keeps at most size paths in ranking order. Zero or less disables the limit.
func NewLimit(size int) Filter {
	return limitFilter{size: size}
}

func (limitFilter) Name() string { return "limit" }

func (f limitFilter) Apply(_ context.Context, paths []career.Path) ([]career.Path, Step, error) {
	if f.size <= 0 || len(paths) <= f.size {
		return paths, step(len(paths), paths), nil
	}

	out := paths[:f.size]
	return out, step(len(paths), out), nil
}

// Default returns the standard pipeline used by the scoring server.
func Default(maxResults int) []Filter {
	return []Filter{
		NewNormalize(),
		NewUntitled(),
		NewDedupe(),
		NewLimit(maxResults),
	}
}
