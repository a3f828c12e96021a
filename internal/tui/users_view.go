package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/format"
	"taskdesk/internal/model"
)

func (m *appModel) clampUserCursor() {
	n := len(m.users.PageRows())
	if m.userCursor >= n {
		m.userCursor = n - 1
	}
	if m.userCursor < 0 {
		m.userCursor = 0
	}
}

func (m *appModel) selectedUser() (model.User, bool) {
	rows := m.users.PageRows()
	if m.userCursor < 0 || m.userCursor >= len(rows) {
		return model.User{}, false
	}
	return rows[m.userCursor], true
}

func (m appModel) updateUsers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "g":
		return m, m.goDashboard()
	case "t":
		return m, m.goTasks()
	case "L":
		m.logout()
		return m, m.login.focusCmd()
	case "R":
		return m, tea.Batch(m.fetchUsers(), m.spin.Tick)

	case "up", "k":
		m.userCursor--
		m.clampUserCursor()
	case "down", "j":
		m.userCursor++
		m.clampUserCursor()
	case "left", "h":
		m.users.PrevPage()
		m.clampUserCursor()
	case "right", "l":
		m.users.NextPage()
		m.clampUserCursor()

	case "f":
		m.openPrompt(promptFilter)
		return m, textinputBlink()
	case "F":
		m.users.ResetFilters()
		m.userCursor = 0
	case "s", "S":
		m.openPrompt(promptSort)
		return m, textinputBlink()

	case "c":
		if m.gate(viewUserForm) {
			m.userForm = newUserFormState(nil)
			m.view = viewUserForm
		}
	case "e":
		if u, ok := m.selectedUser(); ok && m.gate(viewUserForm) {
			m.userForm = newUserFormState(&u)
			m.view = viewUserForm
		}
	case "d":
		if u, ok := m.selectedUser(); ok {
			return m, tea.Batch(m.deleteUser(u.ID), m.spin.Tick)
		}
	}
	return m, nil
}

var userCells = []struct {
	title string
	width int
	cell  func(model.User) string
}{
	{"S.No", 5, nil},
	{"Name", 22, func(u model.User) string { return u.Name }},
	{"Email", 30, func(u model.User) string { return u.Email }},
	{"Role", 20, func(u model.User) string {
		if role, ok := model.ParseRole(u.Role); ok {
			return role.Label()
		}
		return format.Title(u.Role)
	}},
	{"Department", 18, func(u model.User) string { return u.Department }},
}

func (m appModel) usersView() string {
	var b strings.Builder
	b.WriteString("\n  " + styleHeading.Render("Users") + "\n")
	b.WriteString("  " + styleLabel.Render(m.tableStateLine(filterLine(m.users), m.users.Page(), m.users.TotalPages(), len(m.users.Rows()))) + "\n\n")

	rows := m.users.PageRows()
	if len(rows) == 0 {
		b.WriteString("  " + styleLabel.Render("No users found") + "\n")
		return b.String()
	}

	var head strings.Builder
	for _, c := range userCells {
		head.WriteString(pad(c.title, c.width))
		head.WriteString("  ")
	}
	b.WriteString("  " + styleHeading.Render(strings.TrimRight(head.String(), " ")) + "\n")

	for i, u := range rows {
		var line strings.Builder
		line.WriteString(pad(fmt.Sprintf("%d", m.users.PageStart()+i+1), userCells[0].width))
		line.WriteString("  ")
		for _, c := range userCells[1:] {
			line.WriteString(pad(c.cell(u), c.width))
			line.WriteString("  ")
		}
		row := strings.TrimRight(line.String(), " ")
		if i == m.userCursor {
			row = styleSelected.Render(row)
		}
		b.WriteString("  " + row + "\n")
	}

	if m.prompt != nil {
		b.WriteString("\n" + m.promptView())
	}
	return b.String()
}
