// Package ui implements the interactive terminal prompter used during
// document generation. Every operator interaction runs through one of
// three primitives: a free-text input, a filterable selection list, and
// a yes/no confirmation. Esc backs out of any of them, which the caller
// sees as types.ErrCancelled.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared by the prompt models and the
// summary table.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the docgen terminal theme.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f2f2f2")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}
