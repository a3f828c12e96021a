package cli

import (
	"github.com/spf13/cobra"

	"taskdesk/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change client configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return writeOut(cmd, app, cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-base-url <url>",
		Short: "Persist the backend base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.BaseURL = args[0]
			if err := config.Save(cfg); err != nil {
				return err
			}
			return writeOut(cmd, app, cfg)
		},
	})

	return cmd
}
