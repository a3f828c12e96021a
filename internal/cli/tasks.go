package cli

import (
	"os"

	"github.com/spf13/cobra"

	"taskdesk/internal/api"
	"taskdesk/internal/export"
	"taskdesk/internal/format"
	"taskdesk/internal/model"
	"taskdesk/internal/records"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, inspect and manage tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksHistoryCmd(app))
	cmd.AddCommand(newTasksExportCmd(app))
	return cmd
}

// taskRow is a display-ready task: the same rendered values the table
// columns produce.
type taskRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
	Created     string `json:"created"`
	Completed   string `json:"completed"`
	Due         string `json:"due"`
}

func rowOf(t model.Task) taskRow {
	return taskRow{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Department:  format.Departments(t.Departments),
		Status:      format.Title(string(t.Status)),
		Assignee:    format.Assignees(t.Assignees),
		Priority:    format.Title(string(t.Priority)),
		Created:     format.DateTime(t.CreatedAt),
		Completed:   format.DateTime(t.CompletedAt),
		Due:         format.DateTime(t.DueAt),
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var dept, status, priority, assignee, created, sortKey string
	var descending, all bool
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with the table pipeline (filter, sort, paginate)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), allRoles()...)
			if err != nil {
				return err
			}
			tasks, err := client.ListTasks(cmd.Context())
			if err != nil {
				return err
			}

			eng := records.NewTaskTable(tasks)
			for key, val := range map[string]string{
				"department": dept,
				"status":     status,
				"priority":   priority,
				"assignee":   assignee,
				"created":    created,
			} {
				if val != "" {
					eng.SetFilter(key, val)
				}
			}
			if sortKey != "" {
				eng.ToggleSort(sortKey)
				if descending {
					eng.ToggleSort(sortKey)
				}
			}
			if page > 0 {
				eng.SetPage(page)
			}

			src := eng.PageRows()
			if all {
				src = eng.Rows()
			}
			rows := make([]taskRow, 0, len(src))
			for _, t := range src {
				rows = append(rows, rowOf(t))
			}
			return writeOut(cmd, app, map[string]any{
				"tasks":      rows,
				"count":      len(eng.Rows()),
				"page":       eng.Page(),
				"totalPages": eng.TotalPages(),
			})
		},
	}

	cmd.Flags().StringVar(&dept, "department", "", "Filter by department display value")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (e.g. Pending)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority (e.g. High)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee display value")
	cmd.Flags().StringVar(&created, "created", "", "Filter by created day (e.g. 4-March-2025)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort column key (title, department, status, assignee, priority, created, completed, due)")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (default 1)")
	cmd.Flags().BoolVar(&all, "all", false, "Print every filtered row instead of one page")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), allRoles()...)
			if err != nil {
				return err
			}
			task, err := client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeOut(cmd, app, rowOf(task))
		},
	}
}

func taskFormFlags(cmd *cobra.Command, f *records.TaskForm) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.Description, "description", "", "Task description")
	cmd.Flags().StringArrayVar(&f.Assignees, "assignee", nil, "Assignee email (repeatable)")
	cmd.Flags().StringArrayVar(&f.Departments, "department", nil, "Department for the matching --assignee (repeatable)")
	cmd.Flags().StringVar(&f.Priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVar(&f.Status, "status", "", "Status (pending|in_progress|completed|overdue)")
	cmd.Flags().StringVar(&f.DueDate, "due", "", "Due date (RFC 3339 or YYYY-MM-DD)")
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var form records.TaskForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if err := client.CreateTask(cmd.Context(), form.Payload()); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "created"})
		},
	}
	taskFormFlags(cmd, &form)
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var form records.TaskForm

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}

			// Only the provided flags are sent; the backend applies partial
			// updates key by key.
			var p api.TaskPayload
			flags := cmd.Flags()
			if flags.Changed("title") {
				p.Title = form.Title
			}
			if flags.Changed("description") {
				p.Description = form.Description
			}
			if flags.Changed("priority") {
				p.Priority = form.Priority
			}
			if flags.Changed("status") {
				p.Status = form.Status
			}
			if flags.Changed("due") {
				p.DueDate = form.DueDate
			}
			if flags.Changed("assignee") || flags.Changed("department") {
				// Reassignment needs the full pairing; validate it as a unit.
				pairing := records.TaskForm{
					Title:       "x",
					Description: "x",
					Assignees:   form.Assignees,
					Departments: form.Departments,
					Priority:    "low",
				}
				if err := pairing.Validate(); err != nil {
					return err
				}
				p.Assignees = pairing.Assignees
				p.Departments = pairing.Departments
			}

			if err := client.UpdateTask(cmd.Context(), args[0], p); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "updated"})
		},
	}
	taskFormFlags(cmd, &form)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "deleted"})
		},
	}
}

func newTasksHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the task audit history",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			entries, err := client.TaskHistory(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"history": entries})
		},
	}
}

func newTasksExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full task collection to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			// The export covers everything the server returned, regardless
			// of any on-screen filters.
			tasks, err := client.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.Tasks(tasks, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"file": out, "rows": len(tasks)})
		},
	}
	cmd.Flags().StringVar(&out, "out", export.DefaultFilename, "Output file path")
	return cmd
}
