package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/format"
)

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewTasks
		m.loadErr = ""
		return m, nil
	case "e":
		if m.manager() && m.gate(viewTaskForm) {
			t := m.detail
			m.taskForm = newTaskFormState(&t)
			m.view = viewTaskForm
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) detailView() string {
	t := m.detail
	var b strings.Builder
	b.WriteString("\n  " + styleHeading.Render(t.Title) + "\n\n")

	status := format.Title(string(t.Status))
	meta := [][2]string{
		{"Status", statusStyle(status).Render(status)},
		{"Priority", format.Title(string(t.Priority))},
		{"Assignee", format.Assignees(t.Assignees)},
		{"Department", format.Departments(t.Departments)},
		{"Due", format.DateTime(t.DueAt)},
		{"Created", format.DateTime(t.CreatedAt)},
		{"Completed", format.DateTime(t.CompletedAt)},
	}
	for _, kv := range meta {
		b.WriteString("  " + styleLabel.Render(pad(kv[0], 12)) + kv[1] + "\n")
	}

	width := m.width - 4
	if width < 20 || width > 100 {
		width = 80
	}
	if desc := renderMarkdown(t.Description, width); desc != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(desc, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
