package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a yes/no question. y/n answer directly, arrow keys
// plus Enter also work, Esc cancels.
type confirmModel struct {
	question string
	styles   Styles

	yes       bool
	done      bool
	cancelled bool
}

func newConfirmModel(question string, styles Styles) confirmModel {
	return confirmModel{question: question, styles: styles, yes: true}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyCtrlC:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown, tea.KeyTab:
		m.yes = !m.yes
		return m, nil
	}

	switch strings.ToLower(key.String()) {
	case "y":
		m.yes, m.done = true, true
		return m, tea.Quit
	case "n":
		m.yes, m.done = false, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	yes, no := "  Yes", "  No"
	if m.yes {
		yes = m.styles.Cursor.Render("> ") + m.styles.Selected.Render("Yes")
	} else {
		no = m.styles.Cursor.Render("> ") + m.styles.Selected.Render("No")
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.question))
	sb.WriteString("\n")
	sb.WriteString(yes + "\n" + no + "\n")
	sb.WriteString(m.styles.Muted.Render("y/n or enter  esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}
