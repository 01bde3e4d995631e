package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/loader"
	"equipment-feasibility-backend/internal/source"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load catalog, rental and maintenance files into the database",
		Long: `Import reads the three source files and replaces the tables stored in the
configured database with their content. Rows with problems are reported as
warnings; a file without a kode_barang column aborts the import.`,
		Example: `  kelayakanctl import --catalog katalog.xlsx --rentals sewa.csv --maintenance maintenance.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			res, err := loader.LoadAll(source.FilePaths(cfg), cfg.Analysis.Location)
			if err != nil {
				return err
			}

			out := cmd.ErrOrStderr()
			for _, w := range res.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}

			dbCfg := *cfg
			dbCfg.Source.Kind = config.SourceDatabase
			s, err := source.OpenStore(&dbCfg)
			if err != nil {
				return err
			}
			if sqlDB, err := s.DB().DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := s.Replace(cmd.Context(), res.Tables); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d catalog items, %d rentals, %d maintenance events (%d warnings)\n",
				len(res.Tables.Catalog), len(res.Tables.Rentals.Rows), len(res.Tables.Maintenance.Rows), len(res.Warnings))
			return nil
		},
	}
}
