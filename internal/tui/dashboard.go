package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var statCardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 2).
	Align(lipgloss.Center)

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		return m, m.goTasks()
	case "u":
		if m.manager() {
			return m, m.goUsers()
		}
	case "x":
		if m.manager() {
			return m, tea.Batch(m.exportTasks(), m.spin.Tick)
		}
	case "R":
		return m, m.goDashboard()
	case "L":
		m.logout()
		return m, m.login.focusCmd()
	}
	return m, nil
}

func (m appModel) dashboardView() string {
	var b strings.Builder
	name := ""
	if p := m.sess.Principal(); p != nil {
		name = p.Name
	}
	b.WriteString("\n  " + styleHeading.Render("Welcome back, "+name) + "\n\n")

	if !m.hasStats {
		if m.loadErr == "" {
			b.WriteString("  " + m.spin.View() + " loading counters...\n")
		} else {
			b.WriteString("  " + styleLabel.Render("No data to display") + "\n")
		}
		return b.String()
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Total Tasks", m.stats.TotalTasks),
		" ",
		statCard("Completed", m.stats.CompletedTasks),
		" ",
		statCard("Ongoing", m.stats.OngoingTasks),
	)
	b.WriteString(lipgloss.NewStyle().MarginLeft(2).Render(cards))
	b.WriteString("\n")
	return b.String()
}

func statCard(label string, n int) string {
	return statCardStyle.Render(fmt.Sprintf("%s\n%s", styleHeading.Render(fmt.Sprintf("%d", n)), styleLabel.Render(label)))
}
