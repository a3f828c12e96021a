package cli

import (
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show task counters for the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.gated(cmd.Context(), allRoles()...)
			if err != nil {
				return err
			}
			stats, err := client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, stats)
		},
	}
}
