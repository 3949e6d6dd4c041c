package types

import "errors"

// ErrCancelled is returned by a Prompter when the operator backs out of a
// prompt without answering. Callers treat it as "abandon this step", not as
// a failure of the prompt itself.
var ErrCancelled = errors.New("cancelled by operator")

// Prompter is the blocking operator-input surface. Every method suspends
// until the operator responds; implementations live in the CLI layer so the
// resolution packages stay UI-free.
type Prompter interface {
	// Input collects free text. An empty answer is valid.
	Input(title, label string) (string, error)

	// Select presents options and returns the chosen index.
	Select(title string, options []string) (int, error)

	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
}
