package tui

import (
	"taskdesk/internal/model"
)

type view int

const (
	viewLoading view = iota
	viewLogin
	viewDashboard
	viewTasks
	viewTaskDetail
	viewTaskForm
	viewUsers
	viewUserForm
)

func viewToString(v view) string {
	switch v {
	case viewLoading:
		return "loading"
	case viewLogin:
		return "login"
	case viewDashboard:
		return "dashboard"
	case viewTasks:
		return "tasks"
	case viewTaskDetail:
		return "task-detail"
	case viewTaskForm:
		return "task-form"
	case viewUsers:
		return "users"
	case viewUserForm:
		return "user-form"
	}
	return "?"
}

// bootstrapDoneMsg fires once the persisted session has been resolved.
type bootstrapDoneMsg struct{}

type loginDoneMsg struct {
	err string
}

// Fetch results carry the sequence number of the request that produced
// them; a stale seq means the user has already navigated away (or logged
// out) and the payload is dropped.
type tasksLoadedMsg struct {
	seq   int
	tasks []model.Task
	err   string
}

type usersLoadedMsg struct {
	seq   int
	users []model.User
	err   string
}

type statsLoadedMsg struct {
	seq   int
	stats model.Stats
	err   string
}

type taskDetailMsg struct {
	seq  int
	task model.Task
	err  string
}

type mutationDoneMsg struct {
	what string // "created", "updated", "deleted"
	err  string
}

type exportDoneMsg struct {
	file string
	rows int
	err  string
}

type flashDoneMsg struct{ seq int }
