package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/api"
	"taskdesk/internal/session"
)

func Run(client *api.Client, sess *session.Store) error {
	m := newAppModel(client, sess)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
