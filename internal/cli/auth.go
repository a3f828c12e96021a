package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

// principalView is what auth commands print. The token never leaves the
// session store.
type principalView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func viewOf(p *model.Principal) principalView {
	return principalView{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role.Label()}
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("please enter your email (--email)")
			}
			if password == "" {
				return errors.New("please enter your password (--password)")
			}
			_, sess, err := app.setup()
			if err != nil {
				return err
			}
			p, err := sess.Login(cmd.Context(), email, password, remember)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, viewOf(p))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().BoolVar(&remember, "remember", false, "Persist the session across restarts")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the session everywhere it is persisted",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := app.resumed(cmd.Context())
			if err != nil {
				return err
			}
			sess.Logout()
			return writeOut(cmd, app, map[string]string{"status": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := app.resumed(cmd.Context())
			if err != nil {
				return err
			}
			p := sess.Principal()
			if sess.State() != session.StateAuthenticated || p == nil {
				return errNotLoggedIn()
			}
			return writeOut(cmd, app, viewOf(p))
		},
	}
}
