package commands

import (
	"github.com/spf13/cobra"

	lookupdest "github.com/go-i2p/i2cp-lookupdest"
)

var (
	configPath string
	debug      bool
	cfg        *lookupdest.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "destlookup",
		Short:        "Inspect I2CP destination lookups",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				lookupdest.LogInit(lookupdest.DEBUG)
			} else {
				lookupdest.LogInit(lookupdest.ERROR)
			}
			if configPath != "" {
				cfg = lookupdest.LoadConfigFile(configPath)
			} else {
				cfg = lookupdest.LoadConfig()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $I2CP_HOME/.i2cp.conf)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(normalizeCmd(), b33Cmd(), hashCmd())
	return root
}
