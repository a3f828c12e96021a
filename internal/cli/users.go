package cli

import (
	"github.com/spf13/cobra"

	"taskdesk/internal/model"
	"taskdesk/internal/records"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersEditCmd(app))
	cmd.AddCommand(newUsersDeleteCmd(app))
	return cmd
}

type userRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func userRowOf(u model.User) userRow {
	role := u.Role
	if parsed, ok := model.ParseRole(u.Role); ok {
		role = parsed.Label()
	}
	return userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: role, Department: u.Department}
}

func newUsersListCmd(app *App) *cobra.Command {
	var role, dept, sortKey string
	var descending bool
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with the table pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			eng := records.NewUserTable(users)
			if role != "" {
				eng.SetFilter("role", role)
			}
			if dept != "" {
				eng.SetFilter("department", dept)
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

			rows := make([]userRow, 0, len(eng.PageRows()))
			for _, u := range eng.PageRows() {
				rows = append(rows, userRowOf(u))
			}
			return writeOut(cmd, app, map[string]any{
				"users":      rows,
				"count":      len(eng.Rows()),
				"page":       eng.Page(),
				"totalPages": eng.TotalPages(),
			})
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by role display value")
	cmd.Flags().StringVar(&dept, "department", "", "Filter by department")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort column key (name, email, role, department)")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&page, "page", 0, "Page number (default 1)")
	return cmd
}

func userFormFlags(cmd *cobra.Command, f *records.UserForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.Password, "password", "", "Password")
	cmd.Flags().StringVar(&f.Role, "role", "", "Role (hod|admin|faculty)")
	cmd.Flags().StringVar(&f.Department, "department", "", "Department")
}

func newUsersCreateCmd(app *App) *cobra.Command {
	form := records.UserForm{Creating: true}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if err := client.CreateUser(cmd.Context(), form.Payload()); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "created"})
		},
	}
	userFormFlags(cmd, &form)
	return cmd
}

func newUsersEditCmd(app *App) *cobra.Command {
	var form records.UserForm

	cmd := &cobra.Command{
		Use:   "edit <user-id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			if err := form.Validate(); err != nil {
				return err
			}
			if err := client.UpdateUser(cmd.Context(), args[0], form.Payload()); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "updated"})
		},
	}
	userFormFlags(cmd, &form)
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), managerRoles()...)
			if err != nil {
				return err
			}
			if err := client.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"status": "deleted"})
		},
	}
}
