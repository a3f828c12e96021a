package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/session"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.login.busy && m.view != viewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case bootstrapDoneMsg:
		if m.sess.State() == session.StateAuthenticated {
			m.view = viewDashboard
			return m, tea.Batch(m.fetchStats(), m.fetchTasks(), m.spin.Tick)
		}
		m.view = viewLogin
		return m, m.login.focusCmd()

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case statsLoadedMsg:
		if msg.seq != m.statsSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			m.hasStats = false
			return m, nil
		}
		m.stats = msg.stats
		m.hasStats = true
		return m, nil

	case tasksLoadedMsg:
		if msg.seq != m.tasksSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			m.tasks.SetRecords(nil)
			m.taskCursor = 0
			return m, nil
		}
		m.tasks.SetRecords(msg.tasks)
		m.clampTaskCursor()
		return m, nil

	case usersLoadedMsg:
		if msg.seq != m.usersSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			m.users.SetRecords(nil)
			m.userCursor = 0
			return m, nil
		}
		m.users.SetRecords(msg.users)
		m.clampUserCursor()
		return m, nil

	case taskDetailMsg:
		if msg.seq != m.detailSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			return m, nil
		}
		m.detail = msg.task
		m.view = viewTaskDetail
		return m, nil

	case mutationDoneMsg:
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			return m, nil
		}
		cmds := []tea.Cmd{m.setFlash("Task " + msg.what), m.spin.Tick}
		switch m.view {
		case viewTaskForm:
			m.taskForm = nil
			m.view = viewTasks
			cmds = append(cmds, m.fetchTasks())
		case viewUserForm:
			m.userForm = nil
			m.view = viewUsers
			cmds[0] = m.setFlash("User " + msg.what)
			cmds = append(cmds, m.fetchUsers())
		case viewUsers:
			cmds[0] = m.setFlash("User " + msg.what)
			cmds = append(cmds, m.fetchUsers())
		default:
			cmds = append(cmds, m.fetchTasks())
		}
		return m, tea.Batch(cmds...)

	case exportDoneMsg:
		m.loading = false
		if msg.err != "" {
			m.loadErr = msg.err
			return m, nil
		}
		return m, m.setFlash(fmt.Sprintf("Exported %d tasks to %s", msg.rows, msg.file))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// An open prompt or form owns the keyboard.
	if m.prompt != nil {
		return m.updatePrompt(msg)
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewTaskForm:
		return m.updateTaskForm(msg)
	case viewUserForm:
		return m.updateUserForm(msg)
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewTasks:
		return m.updateTasks(msg)
	case viewTaskDetail:
		return m.updateDetail(msg)
	case viewUsers:
		return m.updateUsers(msg)
	}
	return m, nil
}

// goTasks navigates to the task table, re-fetching the collection.
func (m *appModel) goTasks() tea.Cmd {
	if !m.gate(viewTasks) {
		return nil
	}
	m.view = viewTasks
	m.loadErr = ""
	return tea.Batch(m.fetchTasks(), m.spin.Tick)
}

func (m *appModel) goUsers() tea.Cmd {
	if !m.gate(viewUsers) {
		return nil
	}
	m.view = viewUsers
	m.loadErr = ""
	return tea.Batch(m.fetchUsers(), m.spin.Tick)
}

// goDashboard fetches the counters and the task list independently; either
// may land first, and each updates its own slice of state.
func (m *appModel) goDashboard() tea.Cmd {
	if !m.gate(viewDashboard) {
		return nil
	}
	m.view = viewDashboard
	m.loadErr = ""
	return tea.Batch(m.fetchStats(), m.fetchTasks(), m.spin.Tick)
}

func (m *appModel) logout() {
	m.sess.Logout()
	// Orphan any in-flight fetches.
	m.tasksSeq++
	m.usersSeq++
	m.statsSeq++
	m.detailSeq++
	m.loading = false
	m.loadErr = ""
	m.tasks.SetRecords(nil)
	m.users.SetRecords(nil)
	m.hasStats = false
	m.view = viewLogin
	m.login = newLoginState()
}
