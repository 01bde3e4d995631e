package cli

import (
	"github.com/spf13/cobra"

	"equipment-feasibility-backend/internal/analytics"
	"equipment-feasibility-backend/internal/feasibility"
)

// Report bundles every analytics view of one snapshot.
type Report struct {
	Reference       string                        `json:"reference"`
	Strategic       *analytics.Strategic          `json:"strategic"`
	Recommendations []analytics.LabelCount        `json:"recommendations"`
	Categories      []analytics.CategoryStats     `json:"categories"`
	Critical        feasibility.Table             `json:"critical"`
	Lifecycle       []feasibility.StagedRecord    `json:"lifecycle"`
	Maintenance     *analytics.MaintenanceSummary `json:"maintenance"`
	TopMaintenance  []analytics.ItemCount         `json:"top_maintenance"`
	RentalTrends    []analytics.MonthCount        `json:"rental_trends"`
}

func newReportCmd(opts *options) *cobra.Command {
	var (
		at        string
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the analytics report: categories, recommendations, critical items and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			snap, err := snapshot(cmd.Context(), cfg, at)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Analysis.CriticalThreshold
			}

			report := Report{
				Reference:       snap.Reference.Format("2006-01-02"),
				Strategic:       analytics.StrategicInsights(snap.Insights),
				Recommendations: analytics.RecommendationDistribution(snap.Insights),
				Categories:      analytics.CategoryPerformance(snap.Insights),
				Critical:        analytics.CriticalItems(snap.Insights, threshold),
				Lifecycle:       feasibility.ClassifyLifecycle(snap.Insights),
				Maintenance:     analytics.SummarizeMaintenance(snap.Tables.Maintenance),
				TopMaintenance:  analytics.TopMaintenanceItems(snap.Tables.Maintenance, analytics.DefaultTopMaintenanceCount),
				RentalTrends:    analytics.RentalTrends(snap.Tables.Rentals, cfg.Analysis.Location),
			}
			return renderReport(cmd.OutOrStdout(), opts.output, &report)
		},
	}
	addAtFlag(cmd, &at)
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "maintenance ratio above which an item is critical (default from config)")
	return cmd
}
