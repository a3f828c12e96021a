// Package records binds the generic table engine and the form validation to
// the concrete task and user record types. The CLI and the TUI share these
// definitions so filtering, sorting and validation behave identically in
// both surfaces.
package records

import (
	"time"

	"taskdesk/internal/format"
	"taskdesk/internal/model"
	"taskdesk/internal/table"
)

func TaskID(t model.Task) string { return t.ID }

func UserID(u model.User) string { return u.ID }

// TaskColumns is the task table: which columns exist, how cells render, and
// which columns filter and sort.
func TaskColumns() []table.Column[model.Task] {
	return []table.Column[model.Task]{
		{
			Key:      "title",
			Title:    "Task",
			Value:    func(t model.Task) string { return t.Title },
			Sortable: true,
		},
		{
			Key:   "description",
			Title: "Description",
			Value: func(t model.Task) string { return t.Description },
		},
		{
			Key:        "department",
			Title:      "Department",
			Value:      func(t model.Task) string { return format.Departments(t.Departments) },
			Filterable: true,
			Sortable:   true,
		},
		{
			Key:        "status",
			Title:      "Status",
			Value:      func(t model.Task) string { return format.Title(string(t.Status)) },
			Filterable: true,
			Sortable:   true,
		},
		{
			Key:        "assignee",
			Title:      "Assignee",
			Value:      func(t model.Task) string { return format.Assignees(t.Assignees) },
			Filterable: true,
			Sortable:   true,
		},
		{
			Key:        "priority",
			Title:      "Priority",
			Value:      func(t model.Task) string { return format.Title(string(t.Priority)) },
			Filterable: true,
			Sortable:   true,
		},
		{
			Key:         "created",
			Title:       "Created Date",
			Value:       func(t model.Task) string { return format.DateTime(t.CreatedAt) },
			FilterValue: func(t model.Task) string { return format.DayKey(t.CreatedAt) },
			Time:        func(t model.Task) *time.Time { return t.CreatedAt },
			Filterable:  true,
			Sortable:    true,
		},
		{
			Key:      "completed",
			Title:    "Completed Date",
			Value:    func(t model.Task) string { return format.DateTime(t.CompletedAt) },
			Time:     func(t model.Task) *time.Time { return t.CompletedAt },
			Sortable: true,
		},
		{
			Key:      "due",
			Title:    "Due Date",
			Value:    func(t model.Task) string { return format.DateTime(t.DueAt) },
			Time:     func(t model.Task) *time.Time { return t.DueAt },
			Sortable: true,
		},
	}
}

// UserColumns is the user management table.
func UserColumns() []table.Column[model.User] {
	return []table.Column[model.User]{
		{
			Key:      "name",
			Title:    "Name",
			Value:    func(u model.User) string { return u.Name },
			Sortable: true,
		},
		{
			Key:      "email",
			Title:    "Email",
			Value:    func(u model.User) string { return u.Email },
			Sortable: true,
		},
		{
			Key:   "role",
			Title: "Role",
			Value: func(u model.User) string {
				if role, ok := model.ParseRole(u.Role); ok {
					return role.Label()
				}
				return format.Title(u.Role)
			},
			Filterable: true,
			Sortable:   true,
		},
		{
			Key:        "department",
			Title:      "Department",
			Value:      func(u model.User) string { return u.Department },
			Filterable: true,
			Sortable:   true,
		},
	}
}

// NewTaskTable builds a task engine over a fetched collection.
func NewTaskTable(tasks []model.Task) *table.Engine[model.Task] {
	return table.New(tasks, TaskColumns(), TaskID)
}

// NewUserTable builds a user engine over a fetched collection.
func NewUserTable(users []model.User) *table.Engine[model.User] {
	return table.New(users, UserColumns(), UserID)
}
