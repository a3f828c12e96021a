package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginFocus int

const (
	focusEmail loginFocus = iota
	focusPassword
	focusRemember
)

type loginState struct {
	email    textinput.Model
	password textinput.Model
	remember bool
	focus    loginFocus
	busy     bool
	errMsg   string
}

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@example.edu"
	email.Prompt = "> "
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "> "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return loginState{email: email, password: password}
}

func (s *loginState) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (s *loginState) setFocus(f loginFocus) {
	s.focus = f
	s.email.Blur()
	s.password.Blur()
	switch f {
	case focusEmail:
		s.email.Focus()
	case focusPassword:
		s.password.Focus()
	}
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.login.setFocus((m.login.focus + 1) % 3)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.login.setFocus((m.login.focus + 2) % 3)
		return m, textinput.Blink
	case "enter":
		return m.submitLogin()
	case " ":
		if m.login.focus == focusRemember {
			m.login.remember = !m.login.remember
			return m, nil
		}
	case "q":
		// "q" must stay typeable in the inputs; only quit from the toggle.
		if m.login.focus == focusRemember {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.login.focus {
	case focusEmail:
		m.login.email, cmd = m.login.email.Update(msg)
	case focusPassword:
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.email.Value())
	password := m.login.password.Value()
	if email == "" {
		m.login.errMsg = "Please enter your email"
		return m, nil
	}
	if password == "" {
		m.login.errMsg = "Please enter your password"
		return m, nil
	}

	m.login.busy = true
	m.login.errMsg = ""
	sess := m.sess
	remember := m.login.remember
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		if _, err := sess.Login(context.Background(), email, password, remember); err != nil {
			return loginDoneMsg{err: err.Error()}
		}
		return loginDoneMsg{}
	})
}

func (m appModel) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != "" {
		m.login.errMsg = msg.err
		return m, nil
	}
	m.view = viewDashboard
	return m, tea.Batch(m.fetchStats(), m.fetchTasks(), m.spin.Tick)
}

func (m appModel) loginView() string {
	var b strings.Builder
	b.WriteString("\n  " + styleHeading.Render("Sign in") + "\n\n")
	if m.login.errMsg != "" {
		b.WriteString("  " + styleError.Render(m.login.errMsg) + "\n\n")
	}
	b.WriteString("  " + styleLabel.Render("Email") + "\n")
	b.WriteString("  " + m.login.email.View() + "\n\n")
	b.WriteString("  " + styleLabel.Render("Password") + "\n")
	b.WriteString("  " + m.login.password.View() + "\n\n")

	box := "[ ]"
	if m.login.remember {
		box = "[x]"
	}
	remember := box + " Remember me"
	if m.login.focus == focusRemember {
		remember = styleSelected.Render(remember)
	}
	b.WriteString("  " + remember + "\n")

	if m.login.busy {
		b.WriteString("\n  " + m.spin.View() + " signing in...\n")
	}
	return b.String()
}
