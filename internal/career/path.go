// Package career describes scored career paths and the sources that produce them.
package career

import (
	"context"
	"errors"
)

// ErrStatus is wrapped by sources when the scoring endpoint answers with a non-2xx status.
var ErrStatus = errors.New("bad status")

// ErrMalformed is wrapped when a response body is not a list of career paths.
var ErrMalformed = errors.New("malformed career paths")

// Path is one ranked recommendation returned by a scoring source.
type Path struct {
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	SkillGaps   []string `json:"skill_gaps" mapstructure:"skill_gaps"`
}

// Gaps returns the skill gaps, never nil.
func (p Path) Gaps() []string {
	if p.SkillGaps == nil {
		return []string{}
	}

	return p.SkillGaps
}

// Request is the profile submitted for scoring.
type Request struct {
	Skills    string `json:"skills" form:"skills"`
	Interests string `json:"interests" form:"interests"`
}

// Source produces an ordered list of career paths for a profile.
type Source interface {
	Fetch(ctx context.Context, req Request) ([]Path, error)
}

// Titles returns the titles of paths in order.
func Titles(paths []Path) []string {
	titles := make([]string, 0, len(paths))
	for _, p := range paths {
		titles = append(titles, p.Title)
	}

	return titles
}
