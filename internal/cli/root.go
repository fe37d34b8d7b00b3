package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/srgjo27/rail_ticket/internal/config"
	"github.com/srgjo27/rail_ticket/internal/platform/logger"
)

type app struct {
	configPath string
	debug      bool
	cfg        *config.Config
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "railbook",
		Short:        "Reserve KTX and SRT tickets through the booking gateway",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.Log.Level
			if a.debug {
				level = "debug"
			}
			return logger.Setup(level, cfg.Log.Format, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./config/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logs")

	cmd.AddCommand(newServeCmd(a), newSearchCmd(a), newReserveCmd(a))
	return cmd
}
