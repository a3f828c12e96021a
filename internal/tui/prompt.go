package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type promptKind int

const (
	promptFilter promptKind = iota
	promptSort
)

// promptState is a one-line input overlay at the bottom of a table view.
// Filter input is "column=value" (empty value clears that column); sort
// input is a bare column key, entered again to flip direction.
type promptState struct {
	kind  promptKind
	input textinput.Model
}

func textinputBlink() tea.Cmd { return textinput.Blink }

func (m *appModel) openPrompt(kind promptKind) {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128
	switch kind {
	case promptFilter:
		ti.Placeholder = "column=value (empty value clears)"
	case promptSort:
		ti.Placeholder = "column key (again to flip)"
	}
	ti.Focus()
	m.prompt = &promptState{kind: kind, input: ti}
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = nil
		return m, nil
	case "enter":
		text := m.prompt.input.Value()
		kind := m.prompt.kind
		m.prompt = nil
		m.applyPrompt(kind, text)
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m *appModel) applyPrompt(kind promptKind, text string) {
	switch kind {
	case promptFilter:
		key, value, ok := parseFilterSpec(text)
		if !ok {
			return
		}
		if m.view == viewUsers {
			m.users.SetFilter(key, value)
			m.userCursor = 0
			return
		}
		m.tasks.SetFilter(key, value)
		m.taskCursor = 0
	case promptSort:
		key := strings.TrimSpace(text)
		if key == "" {
			return
		}
		if m.view == viewUsers {
			m.users.ToggleSort(key)
			return
		}
		m.tasks.ToggleSort(key)
	}
}

// parseFilterSpec splits "column=value". A missing "=" is rejected; an
// empty value is valid and clears the filter on that column.
func parseFilterSpec(s string) (key, value string, ok bool) {
	key, value, found := strings.Cut(s, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

func (m appModel) promptView() string {
	label := "Filter"
	if m.prompt.kind == promptSort {
		label = "Sort"
	}
	return "  " + styleLabel.Render(label) + " " + m.prompt.input.View()
}
