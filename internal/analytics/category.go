// Package analytics holds the read-only rollups computed over an insight
// table. None of the functions mutate their input and all of them return an
// empty result for an empty table.
package analytics

import (
	"math"
	"sort"

	"equipment-feasibility-backend/internal/feasibility"
)

// CategoryStats is the rollup of one equipment category.
type CategoryStats struct {
	Category            string  `json:"kategori"`
	AvgScore            float64 `json:"avg_kelayakan"`
	MinScore            float64 `json:"min_kelayakan"`
	MaxScore            float64 `json:"max_kelayakan"`
	ItemCount           int     `json:"jumlah_items"`
	TotalRentals        int     `json:"total_sewa"`
	TotalMaintenance    int     `json:"total_maintenance"`
	AvgMaintenanceRatio float64 `json:"avg_maintenance_ratio"`
	ROIIndicator        float64 `json:"roi_indicator"`
}

// CategoryPerformance groups the table by category, sorted by average score
// descending. Rows without a category are not grouped.
func CategoryPerformance(t feasibility.Table) []CategoryStats {
	type acc struct {
		stats    CategoryStats
		scoreSum float64
		ratioSum float64
	}

	groups := make(map[string]*acc)
	var order []string
	for _, r := range t {
		if r.Category == "" {
			continue
		}
		g, ok := groups[r.Category]
		if !ok {
			g = &acc{stats: CategoryStats{
				Category: r.Category,
				MinScore: math.Inf(1),
				MaxScore: math.Inf(-1),
			}}
			groups[r.Category] = g
			order = append(order, r.Category)
		}
		g.stats.ItemCount++
		g.stats.TotalRentals += r.RentalCount
		g.stats.TotalMaintenance += r.MaintenanceCount
		g.stats.MinScore = math.Min(g.stats.MinScore, r.Score)
		g.stats.MaxScore = math.Max(g.stats.MaxScore, r.Score)
		g.scoreSum += r.Score
		g.ratioSum += r.MaintenanceRatio
	}

	out := make([]CategoryStats, 0, len(order))
	for _, name := range order {
		g := groups[name]
		s := g.stats
		n := float64(s.ItemCount)
		s.AvgScore = g.scoreSum / n
		s.AvgMaintenanceRatio = g.ratioSum / n
		if s.TotalMaintenance > 0 {
			s.ROIIndicator = float64(s.TotalRentals) / float64(s.TotalMaintenance)
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgScore != out[j].AvgScore {
			return out[i].AvgScore > out[j].AvgScore
		}
		return out[i].Category < out[j].Category
	})
	return out
}
