package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"taskdesk/internal/api"
	"taskdesk/internal/export"
)

// startFetch bumps one collection's sequence and flips the loading state;
// the returned seq travels with the request so stale results can be told
// apart.
func (m *appModel) startFetch(seq *int) int {
	*seq++
	m.loading = true
	m.loadErr = ""
	return *seq
}

func (m *appModel) fetchTasks() tea.Cmd {
	seq := m.startFetch(&m.tasksSeq)
	client := m.client
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		if err != nil {
			return tasksLoadedMsg{seq: seq, err: err.Error()}
		}
		return tasksLoadedMsg{seq: seq, tasks: tasks}
	}
}

func (m *appModel) fetchUsers() tea.Cmd {
	seq := m.startFetch(&m.usersSeq)
	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		if err != nil {
			return usersLoadedMsg{seq: seq, err: err.Error()}
		}
		return usersLoadedMsg{seq: seq, users: users}
	}
}

func (m *appModel) fetchStats() tea.Cmd {
	seq := m.startFetch(&m.statsSeq)
	client := m.client
	return func() tea.Msg {
		stats, err := client.Dashboard(context.Background())
		if err != nil {
			return statsLoadedMsg{seq: seq, err: err.Error()}
		}
		return statsLoadedMsg{seq: seq, stats: stats}
	}
}

func (m *appModel) fetchDetail(id string) tea.Cmd {
	seq := m.startFetch(&m.detailSeq)
	client := m.client
	return func() tea.Msg {
		task, err := client.GetTask(context.Background(), id)
		if err != nil {
			return taskDetailMsg{seq: seq, err: err.Error()}
		}
		return taskDetailMsg{seq: seq, task: task}
	}
}

func (m *appModel) deleteTask(id string) tea.Cmd {
	m.loading = true
	m.loadErr = ""
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), id); err != nil {
			return mutationDoneMsg{what: "deleted", err: err.Error()}
		}
		return mutationDoneMsg{what: "deleted"}
	}
}

func (m *appModel) saveTask(editingID string, p api.TaskPayload) tea.Cmd {
	m.loading = true
	m.loadErr = ""
	client := m.client
	return func() tea.Msg {
		if editingID == "" {
			if err := client.CreateTask(context.Background(), p); err != nil {
				return mutationDoneMsg{what: "created", err: err.Error()}
			}
			return mutationDoneMsg{what: "created"}
		}
		if err := client.UpdateTask(context.Background(), editingID, p); err != nil {
			return mutationDoneMsg{what: "updated", err: err.Error()}
		}
		return mutationDoneMsg{what: "updated"}
	}
}

func (m *appModel) deleteUser(id string) tea.Cmd {
	m.loading = true
	m.loadErr = ""
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteUser(context.Background(), id); err != nil {
			return mutationDoneMsg{what: "deleted", err: err.Error()}
		}
		return mutationDoneMsg{what: "deleted"}
	}
}

func (m *appModel) saveUser(editingID string, p api.UserPayload) tea.Cmd {
	m.loading = true
	m.loadErr = ""
	client := m.client
	return func() tea.Msg {
		if editingID == "" {
			if err := client.CreateUser(context.Background(), p); err != nil {
				return mutationDoneMsg{what: "created", err: err.Error()}
			}
			return mutationDoneMsg{what: "created"}
		}
		if err := client.UpdateUser(context.Background(), editingID, p); err != nil {
			return mutationDoneMsg{what: "updated", err: err.Error()}
		}
		return mutationDoneMsg{what: "updated"}
	}
}

// exportTasks writes the whole collection, ignoring on-screen filters, to
// the default spreadsheet file in the working directory.
func (m *appModel) exportTasks() tea.Cmd {
	m.loading = true
	m.loadErr = ""
	client := m.client
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		if err != nil {
			return exportDoneMsg{err: err.Error()}
		}
		f, err := os.Create(export.DefaultFilename)
		if err != nil {
			return exportDoneMsg{err: err.Error()}
		}
		if err := export.Tasks(tasks, f); err != nil {
			f.Close()
			return exportDoneMsg{err: err.Error()}
		}
		if err := f.Close(); err != nil {
			return exportDoneMsg{err: err.Error()}
		}
		return exportDoneMsg{file: export.DefaultFilename, rows: len(tasks)}
	}
}
