package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/model"
	"taskdesk/internal/records"
)

// formField is one labeled text input in a create/edit form.
type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder, value string) formField {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.SetValue(value)
	return formField{label: label, input: ti}
}

type taskFormState struct {
	editingID string // empty means create
	fields    []formField
	focus     int
	errMsg    string
}

const (
	tfTitle = iota
	tfDescription
	tfAssignees
	tfDepartments
	tfPriority
	tfStatus
	tfDue
)

func newTaskFormState(t *model.Task) *taskFormState {
	s := &taskFormState{}
	title, desc, assignees, departments, priority, status, due := "", "", "", "", "", "", ""
	if t != nil {
		s.editingID = t.ID
		title = t.Title
		desc = t.Description
		emails := make([]string, 0, len(t.Assignees))
		for _, a := range t.Assignees {
			emails = append(emails, a.Email)
		}
		assignees = strings.Join(emails, ", ")
		departments = strings.Join(t.Departments, ", ")
		priority = string(t.Priority)
		status = string(t.Status)
		if t.DueAt != nil {
			due = t.DueAt.Format("2006-01-02")
		}
	}
	s.fields = []formField{
		newField("Title", "short summary", title),
		newField("Description", "markdown supported", desc),
		newField("Assignees", "a@x.edu, b@x.edu", assignees),
		newField("Departments", "one per assignee, comma separated", departments),
		newField("Priority", "low|medium|high|urgent", priority),
		newField("Status", "pending|in_progress|completed|overdue", status),
		newField("Due date", "YYYY-MM-DD", due),
	}
	s.fields[0].input.Focus()
	return s
}

func (s *taskFormState) form() records.TaskForm {
	return records.TaskForm{
		Title:       s.fields[tfTitle].input.Value(),
		Description: s.fields[tfDescription].input.Value(),
		Assignees:   splitCSV(s.fields[tfAssignees].input.Value()),
		Departments: splitCSV(s.fields[tfDepartments].input.Value()),
		Priority:    strings.TrimSpace(s.fields[tfPriority].input.Value()),
		Status:      strings.TrimSpace(s.fields[tfStatus].input.Value()),
		DueDate:     strings.TrimSpace(s.fields[tfDue].input.Value()),
	}
}

func (m appModel) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.taskForm
	switch msg.String() {
	case "esc":
		m.taskForm = nil
		m.view = viewTasks
		return m, nil
	case "tab", "down":
		moveFormFocus(s.fields, &s.focus, 1)
		return m, textinputBlink()
	case "shift+tab", "up":
		moveFormFocus(s.fields, &s.focus, -1)
		return m, textinputBlink()
	case "enter":
		form := s.form()
		if err := form.Validate(); err != nil {
			s.errMsg = err.Error()
			return m, nil
		}
		s.errMsg = ""
		return m, tea.Batch(m.saveTask(s.editingID, form.Payload()), m.spin.Tick)
	}
	var cmd tea.Cmd
	s.fields[s.focus].input, cmd = s.fields[s.focus].input.Update(msg)
	return m, cmd
}

func (m appModel) taskFormView() string {
	title := "New task"
	if m.taskForm.editingID != "" {
		title = "Edit task"
	}
	return formView(title, m.taskForm.fields, m.taskForm.errMsg)
}

type userFormState struct {
	editingID string
	fields    []formField
	focus     int
	errMsg    string
}

const (
	ufName = iota
	ufEmail
	ufPassword
	ufRole
	ufDepartment
)

func newUserFormState(u *model.User) *userFormState {
	s := &userFormState{}
	name, email, role, department := "", "", "", ""
	if u != nil {
		s.editingID = u.ID
		name = u.Name
		email = u.Email
		role = u.Role
		department = u.Department
	}
	s.fields = []formField{
		newField("Name", "full name", name),
		newField("Email", "you@example.edu", email),
		newField("Password", "required when creating", ""),
		newField("Role", "hod|admin|faculty", role),
		newField("Department", "department name", department),
	}
	s.fields[ufPassword].input.EchoMode = textinput.EchoPassword
	s.fields[ufPassword].input.EchoCharacter = '*'
	s.fields[0].input.Focus()
	return s
}

func (s *userFormState) form() records.UserForm {
	return records.UserForm{
		Name:       s.fields[ufName].input.Value(),
		Email:      s.fields[ufEmail].input.Value(),
		Password:   s.fields[ufPassword].input.Value(),
		Role:       s.fields[ufRole].input.Value(),
		Department: s.fields[ufDepartment].input.Value(),
		Creating:   s.editingID == "",
	}
}

func (m appModel) updateUserForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.userForm
	switch msg.String() {
	case "esc":
		m.userForm = nil
		m.view = viewUsers
		return m, nil
	case "tab", "down":
		moveFormFocus(s.fields, &s.focus, 1)
		return m, textinputBlink()
	case "shift+tab", "up":
		moveFormFocus(s.fields, &s.focus, -1)
		return m, textinputBlink()
	case "enter":
		form := s.form()
		if err := form.Validate(); err != nil {
			s.errMsg = err.Error()
			return m, nil
		}
		s.errMsg = ""
		return m, tea.Batch(m.saveUser(s.editingID, form.Payload()), m.spin.Tick)
	}
	var cmd tea.Cmd
	s.fields[s.focus].input, cmd = s.fields[s.focus].input.Update(msg)
	return m, cmd
}

func (m appModel) userFormView() string {
	title := "New user"
	if m.userForm.editingID != "" {
		title = "Edit user"
	}
	return formView(title, m.userForm.fields, m.userForm.errMsg)
}

func moveFormFocus(fields []formField, focus *int, delta int) {
	fields[*focus].input.Blur()
	*focus = (*focus + delta + len(fields)) % len(fields)
	fields[*focus].input.Focus()
}

func formView(title string, fields []formField, errMsg string) string {
	var b strings.Builder
	b.WriteString("\n  " + styleHeading.Render(title) + "\n\n")
	if errMsg != "" {
		b.WriteString("  " + styleError.Render(errMsg) + "\n\n")
	}
	for _, f := range fields {
		b.WriteString("  " + styleLabel.Render(pad(f.label, 12)) + f.input.View() + "\n")
	}
	return b.String()
}

// splitCSV splits a comma separated input, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
