package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdesk/internal/api"
	"taskdesk/internal/config"
	"taskdesk/internal/format"
	"taskdesk/internal/guard"
	"taskdesk/internal/model"
	"taskdesk/internal/session"
	"taskdesk/internal/tui"
)

type App struct {
	BaseURL    string
	PrettyJSON bool
	Format     string

	client *api.Client
	sess   *session.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdesk",
		Short:        "Task management client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdesk

  # Scriptable commands
  taskdesk login --email you@example.edu --password secret --remember
  taskdesk tasks list --department IT --sort created --page 2
  taskdesk tasks export --out tasks_report.xlsx
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("TASKDESK_BASE_URL", ""), "Backend base URL (default: config file, then http://127.0.0.1:8000)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKDESK_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, sess, err := app.setup()
	if err != nil {
		return err
	}
	return tui.Run(client, sess)
}

// setup builds the shared request client and session store. Flag > env >
// config file > default, in that order.
func (app *App) setup() (*api.Client, *session.Store, error) {
	if app.client != nil {
		return app.client, app.sess, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	base := app.BaseURL
	if base == "" {
		base = cfg.BaseURL
	}
	app.client = api.New(base)
	if cfg.DebugLog != "" {
		f, err := os.OpenFile(cfg.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, err
		}
		app.client.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	app.sess = session.NewStore(app.client)
	return app.client, app.sess, nil
}

// resumed restores a persisted session before a command runs.
func (app *App) resumed(ctx context.Context) (*api.Client, *session.Store, error) {
	client, sess, err := app.setup()
	if err != nil {
		return nil, nil, err
	}
	sess.Bootstrap(ctx)
	return client, sess, nil
}

// gated is resumed plus a role check. A deny clears any stale principal so a
// misauthenticated session learns nothing about gated commands.
func (app *App) gated(ctx context.Context, roles ...model.Role) (*api.Client, *session.Store, error) {
	client, sess, err := app.resumed(ctx)
	if err != nil {
		return nil, nil, err
	}
	switch guard.Check(sess.State(), sess.Principal(), roles...) {
	case guard.Allow:
		return client, sess, nil
	default:
		if sess.State() == session.StateAuthenticated {
			sess.Demote()
		}
		return nil, nil, errNotPermitted()
	}
}

func allRoles() []model.Role {
	return []model.Role{model.RoleHeadOfDepartment, model.RoleAdmin, model.RoleFaculty}
}

func managerRoles() []model.Role {
	return []model.Role{model.RoleHeadOfDepartment, model.RoleAdmin}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
