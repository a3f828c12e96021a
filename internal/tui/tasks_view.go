package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"taskdesk/internal/format"
	"taskdesk/internal/model"
	"taskdesk/internal/table"
)

func (m *appModel) clampTaskCursor() {
	n := len(m.tasks.PageRows())
	if m.taskCursor >= n {
		m.taskCursor = n - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

func (m *appModel) selectedTask() (model.Task, bool) {
	rows := m.tasks.PageRows()
	if m.taskCursor < 0 || m.taskCursor >= len(rows) {
		return model.Task{}, false
	}
	return rows[m.taskCursor], true
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "g":
		return m, m.goDashboard()
	case "u":
		if m.manager() {
			return m, m.goUsers()
		}
	case "L":
		m.logout()
		return m, m.login.focusCmd()
	case "R":
		return m, tea.Batch(m.fetchTasks(), m.spin.Tick)

	case "up", "k":
		m.taskCursor--
		m.clampTaskCursor()
	case "down", "j":
		m.taskCursor++
		m.clampTaskCursor()
	case "left", "h":
		m.tasks.PrevPage()
		m.clampTaskCursor()
	case "right", "l":
		m.tasks.NextPage()
		m.clampTaskCursor()

	case "enter":
		if t, ok := m.selectedTask(); ok && table.Expandable(t.Description) {
			m.tasks.ToggleExpand(t)
		}
	case "o", "v":
		if t, ok := m.selectedTask(); ok {
			return m, tea.Batch(m.fetchDetail(t.ID), m.spin.Tick)
		}

	case "f":
		m.openPrompt(promptFilter)
		return m, textinputBlink()
	case "F":
		m.tasks.ResetFilters()
		m.taskCursor = 0
	case "s", "S":
		m.openPrompt(promptSort)
		return m, textinputBlink()

	case "c":
		if m.manager() && m.gate(viewTaskForm) {
			m.taskForm = newTaskFormState(nil)
			m.view = viewTaskForm
		}
	case "e":
		if t, ok := m.selectedTask(); ok && m.manager() && m.gate(viewTaskForm) {
			m.taskForm = newTaskFormState(&t)
			m.view = viewTaskForm
		}
	case "d":
		if t, ok := m.selectedTask(); ok && m.manager() {
			return m, tea.Batch(m.deleteTask(t.ID), m.spin.Tick)
		}
	case "x":
		if m.manager() {
			return m, tea.Batch(m.exportTasks(), m.spin.Tick)
		}
	}
	return m, nil
}

var taskCells = []struct {
	title string
	width int
	cell  func(*appModel, model.Task) string
}{
	{"S.No", 5, nil},
	{"Task", 18, func(m *appModel, t model.Task) string { return t.Title }},
	{"Description", 30, func(m *appModel, t model.Task) string {
		return table.Excerpt(t.Description, m.tasks.Expanded(t))
	}},
	{"Department", 14, func(m *appModel, t model.Task) string { return format.Departments(t.Departments) }},
	{"Status", 12, func(m *appModel, t model.Task) string { return format.Title(string(t.Status)) }},
	{"Assignee", 18, func(m *appModel, t model.Task) string { return format.Assignees(t.Assignees) }},
	{"Priority", 9, func(m *appModel, t model.Task) string { return format.Title(string(t.Priority)) }},
	{"Due Date", 22, func(m *appModel, t model.Task) string { return format.DateTime(t.DueAt) }},
}

func (m appModel) tasksView() string {
	var b strings.Builder
	b.WriteString("\n  " + styleHeading.Render("Tasks") + "\n")
	b.WriteString("  " + styleLabel.Render(m.tableStateLine(filterLine(m.tasks), m.tasks.Page(), m.tasks.TotalPages(), len(m.tasks.Rows()))) + "\n\n")

	rows := m.tasks.PageRows()
	if len(rows) == 0 {
		b.WriteString("  " + styleLabel.Render("No tasks found") + "\n")
		return b.String()
	}

	var head strings.Builder
	for _, c := range taskCells {
		head.WriteString(pad(c.title, c.width))
		head.WriteString("  ")
	}
	b.WriteString("  " + styleHeading.Render(strings.TrimRight(head.String(), " ")) + "\n")

	for i, t := range rows {
		var line strings.Builder
		line.WriteString(pad(fmt.Sprintf("%d", m.tasks.PageStart()+i+1), taskCells[0].width))
		line.WriteString("  ")
		for _, c := range taskCells[1:] {
			line.WriteString(pad(c.cell(&m, t), c.width))
			line.WriteString("  ")
		}
		row := strings.TrimRight(line.String(), " ")
		if i == m.taskCursor {
			row = styleSelected.Render(row)
		}
		b.WriteString("  " + row + "\n")

		// An expanded description spills onto continuation lines under the row.
		if m.tasks.Expanded(t) && table.Expandable(t.Description) {
			for _, l := range wrap(t.Description, 90) {
				b.WriteString("        " + styleLabel.Render(l) + "\n")
			}
		}
	}

	if m.prompt != nil {
		b.WriteString("\n" + m.promptView())
	}
	return b.String()
}

// tableStateLine summarizes active filters, sort and pagination under the
// table heading.
func (m appModel) tableStateLine(filters string, page, totalPages, count int) string {
	parts := []string{}
	if filters != "" {
		parts = append(parts, filters)
	}
	if totalPages < 1 {
		totalPages = 1
	}
	parts = append(parts, fmt.Sprintf("%d rows", count), fmt.Sprintf("page %d/%d", page, totalPages))
	return strings.Join(parts, " • ")
}

// filterLine renders the active filters and sort of an engine, in a stable
// order, for the table state line.
func filterLine[R any](e *table.Engine[R]) string {
	var parts []string
	for _, c := range e.Columns() {
		if v := e.Filter(c.Key); v != "" {
			parts = append(parts, c.Key+"="+v)
		}
	}
	sort.Strings(parts)
	if key, asc := e.Sort(); key != "" {
		dir := "asc"
		if !asc {
			dir = "desc"
		}
		parts = append(parts, "sort "+key+" "+dir)
	}
	return strings.Join(parts, " • ")
}

// pad fits s into w cells, truncating with an ellipsis. Width math goes
// through x/ansi so wide runes and stray escapes don't skew columns.
func pad(s string, w int) string {
	s = xansi.Truncate(s, w, "…")
	if gap := w - xansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// wrap breaks text into lines of at most w cells on word boundaries.
func wrap(text string, w int) []string {
	words := strings.Fields(text)
	var lines []string
	var cur string
	for _, word := range words {
		if cur == "" {
			cur = word
			continue
		}
		if len(cur)+1+len(word) > w {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur += " " + word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
