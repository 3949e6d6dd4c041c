package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is a single-line text prompt. Enter submits (an empty
// answer is a valid submission), Esc cancels.
type inputModel struct {
	title  string
	label  string
	input  textinput.Model
	styles Styles

	done      bool
	cancelled bool
}

func newInputModel(title, label string, styles Styles) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()
	return inputModel{title: title, label: label, input: ti, styles: styles}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")
	if m.label != "" {
		sb.WriteString(m.styles.Label.Render(m.label))
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter: accept  esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

func (m inputModel) value() string {
	return m.input.Value()
}
