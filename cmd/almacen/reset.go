package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/almacen/internal/database"
	"github.com/jask/almacen/internal/prefs"
)

func newResetCmd(flags *rootFlags) *cobra.Command {
	var data bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the last visited routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prefs.ClearRoutes(); err != nil {
				return fmt.Errorf("clear routes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "routes cleared")
			if !data {
				return nil
			}

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			db, err := database.Prepare(cmd.Context(), cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.Reset(cmd.Context(), db); err != nil {
				return fmt.Errorf("reset data: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "catalog cleared:", cfg.Database.Path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&data, "data", false, "also delete every product and sale")
	return cmd
}
