package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// Prompter answers resolver questions through full-screen bubbletea
// prompts. It satisfies types.Prompter; Esc in any prompt surfaces as
// types.ErrCancelled.
type Prompter struct {
	styles Styles
}

// NewPrompter builds a terminal prompter with the default theme.
func NewPrompter() *Prompter {
	return &Prompter{styles: DefaultStyles()}
}

// Input asks for a free-text answer. An empty answer is valid.
func (p *Prompter) Input(title, label string) (string, error) {
	final, err := run(newInputModel(title, label, p.styles))
	if err != nil {
		return "", err
	}
	if final.cancelled {
		return "", types.ErrCancelled
	}
	return final.value(), nil
}

// Select asks the operator to pick one option and returns its index.
func (p *Prompter) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("select %q: no options", title)
	}
	final, err := run(newSelectModel(title, options, p.styles))
	if err != nil {
		return 0, err
	}
	if final.cancelled {
		return 0, types.ErrCancelled
	}
	return final.choice(), nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(question string) (bool, error) {
	final, err := run(newConfirmModel(question, p.styles))
	if err != nil {
		return false, err
	}
	if final.cancelled {
		return false, types.ErrCancelled
	}
	return final.yes, nil
}

// run executes a prompt model to completion and hands back the final
// model in its concrete type.
func run[M tea.Model](m M) (M, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		var zero M
		return zero, fmt.Errorf("prompt: %w", err)
	}
	out, ok := final.(M)
	if !ok {
		var zero M
		return zero, fmt.Errorf("prompt: unexpected model %T", final)
	}
	return out, nil
}
