package console

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Prompter asks the user for choices and text.
type Prompter interface {
	Select(label string, items []string) (string, error)
	Input(label, initial string) (string, error)
}

// TerminalPrompter uses promptui on the controlling terminal.
type TerminalPrompter struct{}

func (TerminalPrompter) Select(label string, items []string) (string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}

	_, selected, err := prompt.Run()
	return selected, err
}

func (TerminalPrompter) Input(label, initial string) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   initial,
		AllowEdit: true,
	}

	return prompt.Run()
}

// isExit reports whether the user aborted a prompt with Ctrl+C or Ctrl+D.
func isExit(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
