package commands

import (
	"github.com/spf13/cobra"

	"seatbroker/internal/app"
)

var (
	cfgFile  string
	logLevel string
	appCtx   *app.App
)

func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and closes the app whether or not the command failed.
func execute(root *cobra.Command) error {
	defer func() {
		if appCtx != nil {
			_ = appCtx.Close()
		}
	}()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "seatbroker",
		Short:        "Take control of a logind session and its devices",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			appCtx, err = app.New(cfg, cmd.ErrOrStderr())
			return err
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(whoamiCmd(), sessionCmd(), takeCmd(), switchCmd())
	return root
}
