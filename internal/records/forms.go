package records

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
)

var validate = validator.New()

// ValidationError blocks a submission client-side; nothing is sent to the
// backend while one is outstanding.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TaskForm is the create/edit task input. Departments pair positionally with
// assignee emails; the pairing rule is checked after the field rules.
type TaskForm struct {
	Title       string   `validate:"required"`
	Description string   `validate:"required"`
	Assignees   []string `validate:"required,min=1,dive,email"`
	Departments []string
	Priority    string `validate:"required,oneof=low medium high urgent"`
	Status      string `validate:"omitempty,oneof=pending in_progress completed overdue"`
	DueDate     string
}

// Validate checks the form without touching the network. Every failure names
// the offending input so the caller can surface it verbatim.
func (f *TaskForm) Validate() error {
	f.trim()
	if err := validate.Struct(f); err != nil {
		return firstFieldError(err, taskFieldMessages)
	}
	// Partial-data rule: a selected assignee with no department means the
	// backend would derive a malformed department set. Refuse to proceed and
	// name the invalid selection.
	if len(f.Departments) != len(f.Assignees) {
		return &ValidationError{Field: "department", Message: "every assignee needs a department"}
	}
	for i, dept := range f.Departments {
		if strings.TrimSpace(dept) == "" {
			return &ValidationError{
				Field:   "department",
				Message: fmt.Sprintf("assignee %s has no department", f.Assignees[i]),
			}
		}
	}
	return nil
}

func (f *TaskForm) trim() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Priority = strings.ToLower(strings.TrimSpace(f.Priority))
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	f.DueDate = strings.TrimSpace(f.DueDate)
	for i := range f.Assignees {
		f.Assignees[i] = strings.ToLower(strings.TrimSpace(f.Assignees[i]))
	}
	for i := range f.Departments {
		f.Departments[i] = strings.TrimSpace(f.Departments[i])
	}
}

func (f *TaskForm) Payload() api.TaskPayload {
	return api.TaskPayload{
		Title:       f.Title,
		Description: f.Description,
		Assignees:   f.Assignees,
		Departments: f.Departments,
		Priority:    f.Priority,
		Status:      f.Status,
		DueDate:     f.DueDate,
	}
}

var taskFieldMessages = map[string]string{
	"Title":       "title is required",
	"Description": "description is required",
	"Assignees":   "at least one assignee email is required",
	"Priority":    "priority must be one of low, medium, high, urgent",
	"Status":      "status must be one of pending, in_progress, completed, overdue",
}

// UserForm is the create/edit user input. Password is only required when
// creating.
type UserForm struct {
	Name       string `validate:"required"`
	Email      string `validate:"required,email"`
	Password   string
	Role       string `validate:"required"`
	Department string `validate:"required"`

	Creating bool
}

func (f *UserForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Role = strings.TrimSpace(f.Role)
	f.Department = strings.TrimSpace(f.Department)

	if err := validate.Struct(f); err != nil {
		return firstFieldError(err, userFieldMessages)
	}
	if _, ok := model.ParseRole(f.Role); !ok {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", f.Role)}
	}
	if f.Creating && strings.TrimSpace(f.Password) == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

func (f *UserForm) Payload() api.UserPayload {
	role := f.Role
	if parsed, ok := model.ParseRole(f.Role); ok {
		role = string(parsed)
	}
	return api.UserPayload{
		Name:       f.Name,
		Email:      f.Email,
		Password:   f.Password,
		Role:       role,
		Department: f.Department,
	}
}

var userFieldMessages = map[string]string{
	"Name":       "name is required",
	"Email":      "a valid email is required",
	"Role":       "role is required",
	"Department": "department is required",
}

func firstFieldError(err error, messages map[string]string) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := errs[0]
	if msg, ok := messages[fe.StructField()]; ok {
		return &ValidationError{Field: strings.ToLower(fe.StructField()), Message: msg}
	}
	return &ValidationError{Field: strings.ToLower(fe.StructField()), Message: fe.Error()}
}
