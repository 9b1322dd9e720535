package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/almacen/internal/config"
)

type rootFlags struct {
	config   string
	db       string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:          "almacen",
		Short:        "Sales and inventory in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default is $HOME/.config/almacen/config.toml)")
	root.PersistentFlags().StringVar(&flags.db, "db", "", "sqlite database path")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newRoutesCmd(&flags), newResetCmd(&flags), newImportCmd(&flags))
	return root
}

// load reads the configuration and applies flag overrides.
func (f *rootFlags) load() (config.Config, error) {
	if f.config != "" {
		if err := os.Setenv("ALMACEN_CONFIG", f.config); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if f.db != "" {
		cfg.Database.Path = f.db
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}
