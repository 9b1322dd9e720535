package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/almacen/internal/database"
	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/service"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import products, prices or sales from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			db, err := database.Prepare(ctx, cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.SeedDefaults(ctx, db); err != nil {
				return err
			}

			svc := &service.IngestService{Products: repository.NewProductRepo(db), Sales: repository.NewSaleRepo(db)}
			res, err := svc.Import(ctx, kind, f, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d, skipped %d, errors %d\n", res.Imported, res.Skipped, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Fprintln(out, mutedStyle.Render("  "+e.Error()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", service.KindProducts, "products, prices or sales")
	return cmd
}
