package cli

import (
	"context"

	"github.com/spf13/cobra"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/insight"
	"equipment-feasibility-backend/internal/source"
)

func newScoreCmd(opts *options) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the insight table",
		Example: `  kelayakanctl score --catalog katalog.csv --rentals sewa.csv --maintenance maintenance.csv
  kelayakanctl score --source database --at 2024-07-01 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := snapshot(cmd.Context(), opts.cfg, at)
			if err != nil {
				return err
			}
			return renderInsights(cmd.OutOrStdout(), opts.output, snap)
		},
	}
	addAtFlag(cmd, &at)
	return cmd
}

// snapshot opens the configured source and scores it once.
func snapshot(ctx context.Context, cfg *config.Config, at string) (*insight.Snapshot, error) {
	ref, err := parseAt(at, cfg.Analysis.Location)
	if err != nil {
		return nil, err
	}
	src, closeFn, err := source.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return insight.NewService(src, cfg).Snapshot(ctx, ref)
}
