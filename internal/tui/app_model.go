package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdesk/internal/api"
	"taskdesk/internal/guard"
	"taskdesk/internal/model"
	"taskdesk/internal/records"
	"taskdesk/internal/session"
	"taskdesk/internal/table"
)

type appModel struct {
	client *api.Client
	sess   *session.Store

	width  int
	height int

	view view

	// Per-collection fetch sequence numbers. Each fetch owns its own slice
	// of state, so concurrent fetches (dashboard stats + task list) never
	// invalidate each other; a result whose seq no longer matches is stale
	// (the user navigated away or logged out) and is dropped.
	tasksSeq  int
	usersSeq  int
	statsSeq  int
	detailSeq int

	loading bool
	spin    spinner.Model

	// loadErr is scoped to the current view's fetch. Navigating away clears
	// it; a failed task fetch never blanks the users table, and vice versa.
	loadErr  string
	flash    string
	flashSeq int

	login loginState

	stats    model.Stats
	hasStats bool

	tasks      *table.Engine[model.Task]
	taskCursor int

	users      *table.Engine[model.User]
	userCursor int

	detail model.Task

	taskForm *taskFormState
	userForm *userFormState

	// prompt, when non-nil, is a one-line input overlay (filter, sort or
	// page jump) that captures all key input until closed.
	prompt *promptState
}

func newAppModel(client *api.Client, sess *session.Store) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return appModel{
		client: client,
		sess:   sess,
		view:   viewLoading,
		spin:   sp,
		login:  newLoginState(),
		tasks:  records.NewTaskTable(nil),
		users:  records.NewUserTable(nil),
	}
}

func (m appModel) Init() tea.Cmd {
	sess := m.sess
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		sess.Bootstrap(context.Background())
		return bootstrapDoneMsg{}
	})
}

func allRoles() []model.Role {
	return []model.Role{model.RoleHeadOfDepartment, model.RoleAdmin, model.RoleFaculty}
}

func managerRoles() []model.Role {
	return []model.Role{model.RoleHeadOfDepartment, model.RoleAdmin}
}

// manager reports whether the signed-in principal may use the management
// surfaces (user admin, task mutation, export, history).
func (m appModel) manager() bool {
	return guard.Check(m.sess.State(), m.sess.Principal(), managerRoles()...) == guard.Allow
}

// gate routes navigation through the access check for the target view. A
// deny drops the principal and falls back to the login screen so a stale or
// under-privileged session never sees a protected page.
func (m *appModel) gate(target view) bool {
	roles := allRoles()
	switch target {
	case viewUsers, viewUserForm, viewTaskForm:
		roles = managerRoles()
	}
	switch guard.Check(m.sess.State(), m.sess.Principal(), roles...) {
	case guard.Allow:
		return true
	default:
		if m.sess.State() == session.StateAuthenticated {
			m.sess.Demote()
		}
		m.view = viewLogin
		m.login = newLoginState()
		m.login.errMsg = "Please log in to continue"
		return false
	}
}

func (m *appModel) setFlash(text string) tea.Cmd {
	m.flash = text
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewLoading:
		body = fmt.Sprintf("\n  %s restoring session...", m.spin.View())
	case viewLogin:
		body = m.loginView()
	case viewDashboard:
		body = m.dashboardView()
	case viewTasks:
		body = m.tasksView()
	case viewTaskDetail:
		body = m.detailView()
	case viewTaskForm:
		body = m.taskFormView()
	case viewUsers:
		body = m.usersView()
	case viewUserForm:
		body = m.userFormView()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m appModel) headerView() string {
	crumb := "taskdesk › " + viewToString(m.view)
	right := ""
	if p := m.sess.Principal(); p != nil {
		right = fmt.Sprintf("%s (%s)", p.Email, p.Role.Label())
	}
	line := styleCrumb.Render(crumb)
	if right != "" {
		line += "  " + styleLabel.Render(right)
	}
	return line
}

func (m appModel) footerView() string {
	if m.loadErr != "" {
		return styleError.Render("  " + m.loadErr)
	}
	if m.flash != "" {
		return styleFlash.Render("  " + m.flash)
	}
	if m.loading {
		return "  " + m.spin.View() + " loading..."
	}
	return styleHelp.Render("  " + m.helpLine())
}

func (m appModel) helpLine() string {
	switch m.view {
	case viewLogin:
		return "tab: next field • enter: sign in • ctrl+c: quit"
	case viewDashboard:
		if m.manager() {
			return "t: tasks • u: users • x: export • L: logout • q: quit"
		}
		return "t: tasks • L: logout • q: quit"
	case viewTasks:
		base := "↑/↓: row • ←/→: page • enter: open • f: filter • F: clear • s: sort • R: reload"
		if m.manager() {
			base += " • c: new • e: edit • d: delete • x: export"
		}
		return base + " • g: dashboard"
	case viewUsers:
		return "↑/↓: row • ←/→: page • f: filter • F: clear • s: sort • c: new • e: edit • d: delete • g: dashboard"
	case viewTaskDetail:
		return "esc: back • e: edit • q: quit"
	case viewTaskForm, viewUserForm:
		return "tab: next field • enter: save • esc: cancel"
	}
	return "q: quit"
}
