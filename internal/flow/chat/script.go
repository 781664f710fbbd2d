package chat

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var defaultScript []byte

// Entry is one scripted question and its answer for a career title.
type Entry struct {
	Title    string
	Question string
	Answer   string
}

// Script maps career titles to their scripted questions. Questions keep their
// insertion order. A Script is immutable once built.
type Script struct {
	questions map[string][]string
	answers   map[string]map[string]string
}

// NewScript builds a script from entries. A repeated title/question pair keeps
// its first position and the last answer.
func NewScript(entries ...Entry) *Script {
	s := &Script{
		questions: make(map[string][]string),
		answers:   make(map[string]map[string]string),
	}

	for _, e := range entries {
		answers, ok := s.answers[e.Title]
		if !ok {
			answers = make(map[string]string)
			s.answers[e.Title] = answers
		}
		if _, ok := answers[e.Question]; !ok {
			s.questions[e.Title] = append(s.questions[e.Title], e.Question)
		}
		answers[e.Question] = e.Answer
	}

	return s
}

// Questions returns the scripted questions for title, empty for unknown titles.
func (s *Script) Questions(title string) []string {
	return append([]string{}, s.questions[title]...)
}

func (s *Script) Answer(title, question string) (string, bool) {
	answer, ok := s.answers[title][question]
	return answer, ok
}

// Titles returns every scripted title.
func (s *Script) Titles() []string {
	titles := make([]string, 0, len(s.questions))
	for title := range s.questions {
		titles = append(titles, title)
	}

	return titles
}

// DefaultScript returns the built-in counselor script.
func DefaultScript() *Script {
	s, err := ParseScript(defaultScript)
	if err != nil {
		panic(fmt.Sprintf("embedded chat script is invalid: %v", err))
	}

	return s
}

// LoadScript reads a YAML script file. See ParseScript for the format.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chat script %q: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading chat script %q: %w", path, err)
	}

	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("chat script %q: %w", path, err)
	}

	return s, nil
}

// ParseScript decodes a mapping of title to a mapping of question to answer.
// Nodes are walked directly since a plain map would lose question order.
func ParseScript(data []byte) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	if doc.Kind == 0 {
		return NewScript(), nil
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of career titles", root.Line)
	}

	entries := make([]Entry, 0)
	for i := 0; i+1 < len(root.Content); i += 2 {
		titleNode, questionsNode := root.Content[i], root.Content[i+1]
		if questionsNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: questions for %q must be a mapping", questionsNode.Line, titleNode.Value)
		}

		for j := 0; j+1 < len(questionsNode.Content); j += 2 {
			question, answer := questionsNode.Content[j], questionsNode.Content[j+1]
			if answer.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: answer to %q must be a string", answer.Line, question.Value)
			}
			entries = append(entries, Entry{
				Title:    titleNode.Value,
				Question: question.Value,
				Answer:   answer.Value,
			})
		}
	}

	return NewScript(entries...), nil
}
