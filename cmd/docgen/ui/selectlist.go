package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const maxVisibleOptions = 12

// selectModel is a filterable selection list. Typing narrows the
// options, arrow keys move the cursor, Enter picks, Esc cancels. The
// model tracks original indices so filtering never changes what a
// choice means to the caller.
type selectModel struct {
	title   string
	options []string
	styles  Styles

	filter   string
	filtered []int // indices into options
	cursor   int   // position within filtered
	offset   int   // first visible row of filtered

	done      bool
	cancelled bool
}

func newSelectModel(title string, options []string, styles Styles) selectModel {
	m := selectModel{title: title, options: options, styles: styles}
	m.applyFilter()
	return m
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		if len(m.filtered) > 0 {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyEsc, tea.KeyCtrlC:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case tea.KeyBackspace:
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	case tea.KeyRunes:
		m.filter += string(key.Runes)
		m.applyFilter()
	case tea.KeySpace:
		m.filter += " "
		m.applyFilter()
	}
	m.clampScroll()
	return m, nil
}

// applyFilter rebuilds the filtered index list. Matching is a
// case-insensitive substring test against the option label.
func (m *selectModel) applyFilter() {
	needle := strings.ToLower(m.filter)
	m.filtered = m.filtered[:0]
	for i, opt := range m.options {
		if needle == "" || strings.Contains(strings.ToLower(opt), needle) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *selectModel) clampScroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisibleOptions {
		m.offset = m.cursor - maxVisibleOptions + 1
	}
}

func (m selectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")
	if m.filter != "" {
		sb.WriteString(m.styles.Muted.Render("filter: ") + m.filter)
		sb.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		sb.WriteString(m.styles.Muted.Render("  (no matches)"))
		sb.WriteString("\n")
	}

	end := m.offset + maxVisibleOptions
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for row := m.offset; row < end; row++ {
		opt := m.options[m.filtered[row]]
		if row == m.cursor {
			sb.WriteString(m.styles.Cursor.Render("> ") + m.styles.Selected.Render(opt))
		} else {
			sb.WriteString("  " + opt)
		}
		sb.WriteString("\n")
	}
	if len(m.filtered) > maxVisibleOptions {
		sb.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("  %d of %d shown", end-m.offset, len(m.filtered))))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render("type to filter  enter: pick  esc: cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// choice returns the selected index into the original options slice.
func (m selectModel) choice() int {
	if len(m.filtered) == 0 {
		return -1
	}
	return m.filtered[m.cursor]
}
