package model

import (
	"encoding/json"
	"strings"
	"time"
)

// Role is the closed set of roles the client understands. The backend has
// shipped several spellings over time ("hod", "Head of Department",
// "SuperAdmin"); ParseRole maps them all here once, at the boundary.
type Role string

const (
	RoleHeadOfDepartment Role = "hod"
	RoleAdmin            Role = "admin"
	RoleFaculty          Role = "faculty"
)

// ParseRole normalizes a backend role string into the closed enumeration.
// Comparison is case-insensitive and ignores spaces, underscores and hyphens.
func ParseRole(s string) (Role, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "hod", "headofdepartment", "superadmin":
		return RoleHeadOfDepartment, true
	case "admin":
		return RoleAdmin, true
	case "faculty", "staff":
		return RoleFaculty, true
	}
	return "", false
}

func (r Role) Label() string {
	switch r {
	case RoleHeadOfDepartment:
		return "Head of Department"
	case RoleAdmin:
		return "Admin"
	case RoleFaculty:
		return "Faculty"
	}
	return string(r)
}

// Principal is the authenticated identity. It is owned by the session store;
// everything else reads it and never mutates it.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Assignee struct {
	Name  string `json:"full_name"`
	Email string `json:"email"`
}

// Display is the assignee's name, falling back to the email address.
func (a Assignee) Display() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return a.Email
}

// Task is a single task record as fetched from the backend. Departments are
// derived server-side from the assignees; the client never edits them
// directly. CompletedAt should be present iff Status is completed, but the
// backend enforces that, not us; render defensively.
type Task struct {
	ID          string
	Title       string
	Description string
	Assignees   []Assignee
	Departments []string
	Status      Status
	Priority    Priority
	DueAt       *time.Time
	CreatedAt   *time.Time
	CompletedAt *time.Time
}

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Stats is the dashboard counters payload.
type Stats struct {
	TotalTasks     int `json:"total_task"`
	CompletedTasks int `json:"completed_task"`
	OngoingTasks   int `json:"ongoing_task"`
}

// taskWire mirrors the loose backend shape: ids may arrive as numbers,
// department as a string or an array, timestamps in a couple of layouts.
type taskWire struct {
	ID          json.Number     `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Department  json.RawMessage `json:"department"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Assignees   []Assignee      `json:"assignee"`
	DueDate     string          `json:"due_date"`
	CreatedAt   string          `json:"created_at"`
	CompletedAt string          `json:"completed_at"`
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var w taskWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = Task{
		ID:          w.ID.String(),
		Title:       w.Title,
		Description: w.Description,
		Assignees:   w.Assignees,
		Departments: decodeDepartments(w.Department),
		Status:      Status(strings.ToLower(strings.TrimSpace(w.Status))),
		Priority:    Priority(strings.ToLower(strings.TrimSpace(w.Priority))),
		DueAt:       parseTime(w.DueDate),
		CreatedAt:   parseTime(w.CreatedAt),
		CompletedAt: parseTime(w.CompletedAt),
	}
	return nil
}

// decodeDepartments accepts both the legacy single-string shape and the
// current array shape.
func decodeDepartments(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		out := make([]string, 0, len(many))
		for _, d := range many {
			if strings.TrimSpace(d) != "" {
				out = append(out, d)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil && strings.TrimSpace(one) != "" {
		return []string{one}
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

// TaskList is the canonical task collection envelope. Older backend builds
// sometimes returned a bare array; `{tasks: [...]}` is the single supported
// shape going forward, but decode tolerates the bare array.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

func (l *TaskList) UnmarshalJSON(b []byte) error {
	type envelope struct {
		Tasks []Task `json:"tasks"`
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err == nil && env.Tasks != nil {
		l.Tasks = env.Tasks
		return nil
	}
	var bare []Task
	if err := json.Unmarshal(b, &bare); err == nil {
		l.Tasks = bare
		return nil
	}
	l.Tasks = nil
	return nil
}

type UserList struct {
	Users []User `json:"users"`
}
