package quiz

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Question is a multiple-choice aptitude question. Answer must be one of Options.
type Question struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Answer   string   `yaml:"answer"`
}

// DefaultQuestions is the built-in logical reasoning set.
func DefaultQuestions() []Question {
	return []Question{
		{
			Question: "Which number logically follows this series? 4, 6, 9, 6, 14, 6, ...",
			Options:  []string{"6", "17", "19", "21"},
			Answer:   "19",
		},
		{
			Question: "Book is to Reading as Fork is to:",
			Options:  []string{"Drawing", "Writing", "Eating", "Stirring"},
			Answer:   "Eating",
		},
		{
			Question: "Find the odd one out:",
			Options:  []string{"Triangle", "Circle", "Square", "Rectangle"},
			Answer:   "Circle",
		},
	}
}

// Validate checks that the set is non-empty, options are distinct and every answer is an option.
func Validate(questions []Question) error {
	if len(questions) == 0 {
		return errors.New("at least one question is required")
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: text is empty", i+1)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %d: no options", i+1)
		}

		seen := make(map[string]struct{}, len(q.Options))
		for _, option := range q.Options {
			if _, ok := seen[option]; ok {
				return fmt.Errorf("question %d: duplicate option %q", i+1, option)
			}
			seen[option] = struct{}{}
		}

		if _, ok := seen[q.Answer]; !ok {
			return fmt.Errorf("question %d: answer %q is not among options", i+1, q.Answer)
		}
	}

	return nil
}

// LoadQuestions reads a YAML list of questions and validates it.
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions file %q: %w", path, err)
	}

	var questions []Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parsing questions file %q: %w", path, err)
	}

	if err := Validate(questions); err != nil {
		return nil, fmt.Errorf("questions file %q: %w", path, err)
	}

	return questions, nil
}
