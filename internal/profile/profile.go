// Package profile holds the skills value shared between the result and quiz flows.
package profile

import (
	"strings"
	"sync"
)

// Profile is the mutable skills field owned by the page.
// The quiz appends to it, the result flow reads it on submit.
type Profile struct {
	mu     sync.RWMutex
	skills string
}

func New(skills string) *Profile {
	return &Profile{skills: skills}
}

func (p *Profile) Read() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.skills
}

// AppendLine adds text as a new line. Existing content is never overwritten;
// the newline separator is only written when the value is non-empty.
func (p *Profile) AppendLine(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.skills != "" {
		p.skills += "\n"
	}
	p.skills += text
}

// Set replaces the value. Only the form input that owns the field calls it.
func (p *Profile) Set(skills string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.skills = skills
}

// Lines returns the non-empty lines of the value.
func (p *Profile) Lines() []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(p.Read(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
